package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/account"
	"centavo/internal/domain/currency"
	"centavo/internal/domain/transfer"
)

// fakeLedger applies transfers to an in-memory account map
type fakeLedger struct {
	accounts map[string]*account.Account
}

func (l *fakeLedger) Transfer(ctx context.Context, params transfer.LedgerParams, check transfer.CheckFunc) (*transfer.LedgerEntry, error) {
	from, ok := l.accounts[params.FromAccountID]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	to, ok := l.accounts[params.ToAccountID]
	if !ok {
		return nil, account.ErrAccountNotFound
	}

	credit, err := check(from, to)
	if err != nil {
		return nil, err
	}

	from.Balance -= params.Amount
	to.Balance += credit

	return &transfer.LedgerEntry{
		DebitTransactionID:  "tx-debit",
		CreditTransactionID: "tx-credit",
		FromBalance:         from.Balance,
		ToBalance:           to.Balance,
	}, nil
}

type staticRates struct {
	snap *currency.Snapshot
	err  error
}

func (s *staticRates) Current(ctx context.Context) (*currency.Snapshot, error) {
	return s.snap, s.err
}

func transferService(ledger transfer.Ledger, rates currency.SnapshotSource) *transfer.Service {
	return transfer.NewService(ledger, rates, transfer.DefaultPolicy())
}

func usdEurSnapshot() *currency.Snapshot {
	return currency.NewSnapshot("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.90"),
	}, time.Now())
}

func TestHandleTransfer(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		ledger         func() *fakeLedger
		rates          *staticRates
		expectedStatus int
	}{
		{
			name: "Cross Currency Success",
			body: `{"fromAccountId": "acc-a", "toAccountId": "acc-b", "amount": 5000}`,
			ledger: func() *fakeLedger {
				return &fakeLedger{accounts: map[string]*account.Account{
					"acc-a": {ID: "acc-a", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 10000},
					"acc-b": {ID: "acc-b", UserID: 1, Kind: account.KindBank, Currency: "EUR", Balance: 0},
				}}
			},
			rates:          &staticRates{snap: usdEurSnapshot()},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Insufficient Funds",
			body: `{"fromAccountId": "acc-a", "toAccountId": "acc-b", "amount": 99999}`,
			ledger: func() *fakeLedger {
				return &fakeLedger{accounts: map[string]*account.Account{
					"acc-a": {ID: "acc-a", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 100},
					"acc-b": {ID: "acc-b", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 0},
				}}
			},
			rates:          &staticRates{snap: usdEurSnapshot()},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "Same Account",
			body: `{"fromAccountId": "acc-a", "toAccountId": "acc-a", "amount": 100}`,
			ledger: func() *fakeLedger {
				return &fakeLedger{accounts: map[string]*account.Account{
					"acc-a": {ID: "acc-a", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 10000},
				}}
			},
			rates:          &staticRates{snap: usdEurSnapshot()},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Negative Amount",
			body: `{"fromAccountId": "acc-a", "toAccountId": "acc-b", "amount": -100}`,
			ledger: func() *fakeLedger {
				return &fakeLedger{accounts: map[string]*account.Account{}}
			},
			rates:          &staticRates{snap: usdEurSnapshot()},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Rates Down Cross Currency",
			body: `{"fromAccountId": "acc-a", "toAccountId": "acc-b", "amount": 100}`,
			ledger: func() *fakeLedger {
				return &fakeLedger{accounts: map[string]*account.Account{
					"acc-a": {ID: "acc-a", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 10000},
					"acc-b": {ID: "acc-b", UserID: 1, Kind: account.KindBank, Currency: "EUR", Balance: 0},
				}}
			},
			rates:          &staticRates{err: context.DeadlineExceeded},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "Foreign Account",
			body: `{"fromAccountId": "acc-a", "toAccountId": "acc-b", "amount": 100}`,
			ledger: func() *fakeLedger {
				return &fakeLedger{accounts: map[string]*account.Account{
					"acc-a": {ID: "acc-a", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 10000},
					"acc-b": {ID: "acc-b", UserID: 2, Kind: account.KindBank, Currency: "USD", Balance: 0},
				}}
			},
			rates:          &staticRates{snap: usdEurSnapshot()},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransferHandler(transferService(tt.ledger(), tt.rates))

			req := authedRequest(http.MethodPost, "/api/transfers", tt.body, 1)
			rr := httptest.NewRecorder()
			handler.HandleTransfer(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleTransferResponseBody(t *testing.T) {
	ledger := &fakeLedger{accounts: map[string]*account.Account{
		"acc-a": {ID: "acc-a", UserID: 1, Kind: account.KindBank, Currency: "USD", Balance: 10000},
		"acc-b": {ID: "acc-b", UserID: 1, Kind: account.KindBank, Currency: "EUR", Balance: 0},
	}}
	handler := NewTransferHandler(transferService(ledger, &staticRates{snap: usdEurSnapshot()}))

	req := authedRequest(http.MethodPost, "/api/transfers", `{"fromAccountId": "acc-a", "toAccountId": "acc-b", "amount": 5000}`, 1)
	rr := httptest.NewRecorder()
	handler.HandleTransfer(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("handler returned wrong status code: got %v want %v: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var res transfer.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if res.AmountSent != 5000 {
		t.Errorf("expected amountSent 5000, got %d", res.AmountSent)
	}
	if res.AmountReceived != 4500 {
		t.Errorf("expected amountReceived 4500, got %d", res.AmountReceived)
	}
	if res.FromBalance != 5000 || res.ToBalance != 4500 {
		t.Errorf("expected balances 5000/4500, got %d/%d", res.FromBalance, res.ToBalance)
	}
	if res.TransferID == "" {
		t.Error("expected a transfer ID")
	}
}
