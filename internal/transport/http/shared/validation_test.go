package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidatorRejectSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("view", " ", "is required")
	v.Enum("format", "docx", []string{"csv", "xlsx"}, "must be csv or xlsx")
	v.Add("bonus", "must be non-negative")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected reject")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Error.Code != "validation_error" || body.RequestID != "req-1" {
		t.Fatalf("unexpected body %+v", body)
	}
	fields := body.Error.Details.Fields
	if len(fields) != 3 || fields[0].Field != "bonus" || fields[2].Field != "view" {
		t.Fatalf("unexpected issues %+v", fields)
	}
}

func TestValidatorEnumIgnoresCase(t *testing.T) {
	v := NewValidator()
	v.Enum("view", "Baseline", []string{"current", "baseline"}, "unknown view")
	if v.HasIssues() {
		t.Fatalf("unexpected issues %+v", v.Issues())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Bonus *float64 `json:"bonus"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bonus": 12.5}`))
	if !DecodeJSON(rec, req, &dst, "") || *dst.Bonus != 12.5 {
		t.Fatalf("expected decode to succeed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount": 1}`))
	if DecodeJSON(rec, req, &dst, "") || rec.Code != http.StatusBadRequest {
		t.Fatalf("expected unknown field to be rejected, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bonus": 1}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 4)
	if DecodeJSON(rec, req, &dst, "") || rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}
