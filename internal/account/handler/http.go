package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"demo-bank/backend/internal/account/domain"
	"demo-bank/backend/internal/account/service"
	"demo-bank/backend/internal/logging"
	"demo-bank/backend/internal/server/httpjson"
	"demo-bank/backend/internal/server/middleware"
	"demo-bank/backend/internal/validation"
)

// HTTPHandler serves the account endpoints. All routes require a session.
type HTTPHandler struct {
	svc *service.AccountService
	log logging.Logger
}

func NewHTTPHandler(svc *service.AccountService, log logging.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, log: log}
}

// Mount registers the account routes under requireAuth.
func (h *HTTPHandler) Mount(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/accounts", h.List)
		r.Post("/api/accounts/{accountID}/fund", h.Fund)
		r.Get("/api/accounts/{accountID}/transactions", h.ListTransactions)
	})
}

type accountResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	BalanceCents  int64  `json:"balanceCents"`
	CreatedAt     string `json:"createdAt"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amountCents"`
	Description string `json:"description"`
	CardBrand   string `json:"cardBrand,omitempty"`
	CardLast4   string `json:"cardLast4,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type fundRequest struct {
	Amount     string `json:"amount"`
	CardNumber string `json:"cardNumber"`
}

func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	accounts, err := h.svc.ListAccounts(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"accounts": out})
}

func (h *HTTPHandler) Fund(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req fundRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tx, err := h.svc.Fund(r.Context(), user.ID, chi.URLParam(r, "accountID"), service.FundRequest{
		Amount:     req.Amount,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]any{"transaction": toTransactionResponse(tx)})
}

func (h *HTTPHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	txs, err := h.svc.ListTransactions(r.Context(), user.ID, chi.URLParam(r, "accountID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"transactions": out})
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:            a.ID,
		AccountNumber: a.MaskedNumber(),
		AccountType:   a.AccountType,
		Balance:       domain.FormatCents(a.BalanceCents),
		BalanceCents:  a.BalanceCents,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      domain.FormatCents(t.AmountCents),
		AmountCents: t.AmountCents,
		Description: t.Description,
		CardBrand:   t.CardBrand,
		CardLast4:   t.CardLast4,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		httpjson.FieldError(w, http.StatusBadRequest, ve.Field, ve.Message)
		return
	}
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		httpjson.Error(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, service.ErrNotAccountOwner):
		httpjson.Error(w, http.StatusForbidden, "Account does not belong to user")
	default:
		h.log.Error(r.Context(), "account handler error", "path", r.URL.Path, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
