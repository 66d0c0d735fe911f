package util

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, 201, "Created", map[string]string{"id": "abc"})

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var resp struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success || resp.Message != "Created" || resp.Data["id"] != "abc" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestWriteErrorOmitsData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, "Transaction not found")

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if raw["success"] != false {
		t.Fatal("success should be false")
	}
	if raw["message"] != "Transaction not found" {
		t.Fatalf("message = %v", raw["message"])
	}
	if _, present := raw["data"]; present {
		t.Fatal("data should be omitted on errors")
	}
}

func TestWriteDataOmitsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, []int{1, 2, 3})

	var raw map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if raw["success"] != true {
		t.Fatal("success should be true")
	}
	if _, present := raw["message"]; present {
		t.Fatal("empty message should be omitted")
	}
}
