package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

// Funding limits live in Rego rather than Go so they can be tuned without
// touching the transaction path.
const fundingRegoPolicy = `package demobank.funding

min_amount_cents := 1
max_amount_cents := 1000000

default allow = false
default deny_reason = ""

allow if {
	input.amount_cents >= min_amount_cents
	input.amount_cents <= max_amount_cents
	input.card_brand != "unknown"
}

deny_reason = "Amount must be at least $0.01" if {
	input.amount_cents < min_amount_cents
}

deny_reason = "Amount cannot exceed $10,000" if {
	input.amount_cents > max_amount_cents
}

deny_reason = "Card type is not supported" if {
	input.card_brand == "unknown"
	input.amount_cents >= min_amount_cents
	input.amount_cents <= max_amount_cents
}
`

// OPAEvaluator evaluates funding policies using OPA Rego.
type OPAEvaluator struct {
	compiler *ast.Compiler
}

// NewOPAEvaluator compiles the funding policy and returns an evaluator.
func NewOPAEvaluator() (*OPAEvaluator, error) {
	modules := map[string]string{"funding.rego": fundingRegoPolicy}
	compiler, err := ast.CompileModules(modules)
	if err != nil {
		return nil, fmt.Errorf("compile funding policy: %w", err)
	}
	return &OPAEvaluator{compiler: compiler}, nil
}

// HealthCheck verifies the compiled policy evaluates against a minimal input.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	_, err := e.EvaluateFunding(ctx, FundingInput{AmountCents: 100, CardBrand: "visa"})
	return err
}

// EvaluateFunding evaluates the funding policy for input. A policy engine
// failure is returned as an error; callers must treat that as a denial.
func (e *OPAEvaluator) EvaluateFunding(ctx context.Context, input FundingInput) (FundingResult, error) {
	doc := map[string]interface{}{
		"amount_cents": input.AmountCents,
		"card_brand":   input.CardBrand,
		"account_type": input.AccountType,
	}

	out := FundingResult{}

	allowRS, err := rego.New(
		rego.Query("data.demobank.funding.allow"),
		rego.Compiler(e.compiler),
		rego.Input(doc),
	).Eval(ctx)
	if err != nil {
		return FundingResult{}, fmt.Errorf("eval funding allow: %w", err)
	}
	if len(allowRS) == 0 || len(allowRS[0].Expressions) == 0 {
		return FundingResult{}, fmt.Errorf("funding policy query returned no result")
	}
	if v, ok := allowRS[0].Expressions[0].Value.(bool); ok {
		out.Allowed = v
	}
	if out.Allowed {
		return out, nil
	}

	reasonRS, err := rego.New(
		rego.Query("data.demobank.funding.deny_reason"),
		rego.Compiler(e.compiler),
		rego.Input(doc),
	).Eval(ctx)
	if err != nil {
		return FundingResult{}, fmt.Errorf("eval funding deny_reason: %w", err)
	}
	if len(reasonRS) > 0 && len(reasonRS[0].Expressions) > 0 {
		if v, ok := reasonRS[0].Expressions[0].Value.(string); ok {
			out.Reason = v
		}
	}
	if out.Reason == "" {
		out.Reason = "Funding request denied"
	}
	return out, nil
}
