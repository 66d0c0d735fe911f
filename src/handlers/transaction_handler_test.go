package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), "user_id", "user-1")
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return resp.Success, resp.Message
}

func TestCreateTransactionValidationOrder(t *testing.T) {
	// Every rejection below happens before the database is touched, so a nil
	// pool is safe. Each body is invalid in several ways at once; the first
	// rule in the sequence must win.
	handler := CreateTransaction(nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "required fields before type",
			body: `{"amount": -5, "date": "bad", "type": "transfer", "category": "food"}`,
			want: "Title, amount, date, type, and category are required",
		},
		{
			name: "type before date",
			body: `{"title": "t", "amount": -5, "date": "bad", "type": "transfer", "category": "food"}`,
			want: "Type must be: income or expense",
		},
		{
			name: "date before amount",
			body: `{"title": "t", "amount": -5, "date": "bad", "type": "expense", "category": "food"}`,
			want: "Invalid date format",
		},
		{
			name: "amount before split sum",
			body: `{"title": "t", "amount": -5, "date": "2024-03-15", "type": "expense", "category": "food", "sources": [{"sourceId": "a", "amount": 90}]}`,
			want: "Amount must be a positive number",
		},
		{
			name: "split sum last",
			body: `{"title": "t", "amount": 100, "date": "2024-03-15", "type": "expense", "category": "food", "sources": [{"sourceId": "a", "amount": 90}]}`,
			want: "Source splits total (90) must equal transaction amount (100)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transactions", tc.body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			success, message := decodeEnvelope(t, rec)
			if success || message != tc.want {
				t.Fatalf("message = %q, want %q", message, tc.want)
			}
		})
	}
}

func TestCreateTransactionRejectsInvalidBody(t *testing.T) {
	handler := CreateTransaction(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transactions", `{not json`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	success, message := decodeEnvelope(t, rec)
	if success || message != "Invalid request body" {
		t.Fatalf("message = %q", message)
	}
}

func TestUpdateTransactionRejectsInvalidType(t *testing.T) {
	handler := UpdateTransaction(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/transactions/t1", `{"type": "transfer"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	success, message := decodeEnvelope(t, rec)
	if success || message != "Type must be: income or expense" {
		t.Fatalf("message = %q", message)
	}
}
