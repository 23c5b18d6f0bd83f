package engine

import "context"

// FundingInput is the document funding policies evaluate against.
type FundingInput struct {
	AmountCents int64
	CardBrand   string
	AccountType string
}

// FundingResult holds the outcome of funding policy evaluation. Reason is
// a user-facing message set only when Allowed is false.
type FundingResult struct {
	Allowed bool
	Reason  string
}

// Evaluator evaluates funding policies using OPA or other engines.
type Evaluator interface {
	// EvaluateFunding decides whether a card funding request is permitted.
	// Evaluation failures deny the request; money never moves on a policy
	// engine error.
	EvaluateFunding(ctx context.Context, input FundingInput) (FundingResult, error)
}
