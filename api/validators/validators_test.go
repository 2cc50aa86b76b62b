package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=10"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok","count":3}`))
	var dest samplePayload
	if err := DecodeJSONBody(r, &dest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.Name != "ok" || dest.Count != 3 {
		t.Fatalf("unexpected payload %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok","count":3,"extra":true}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"count":99}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", typed.Details())
	}
	if _, ok := details["name"]; !ok {
		t.Fatalf("expected json field name in details, got %v", details)
	}
	if _, ok := details["count"]; !ok {
		t.Fatalf("expected count violation in details, got %v", details)
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3", nil)
	got, err := ParseQueryInt(r, "page", 1, 1, 100)
	if err != nil || got != 3 {
		t.Fatalf("got %d, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	if got, _ := ParseQueryInt(r, "page", 1, 1, 100); got != 1 {
		t.Fatalf("expected default, got %d", got)
	}

	r = httptest.NewRequest("GET", "/?page=abc", nil)
	if _, err := ParseQueryInt(r, "page", 1, 1, 100); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	r = httptest.NewRequest("GET", "/?page=999", nil)
	if _, err := ParseQueryInt(r, "page", 1, 1, 100); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected out of range error, got %v", err)
	}
}

func TestParseQueryDecimal(t *testing.T) {
	r := httptest.NewRequest("GET", "/?price_min=1500.50", nil)
	got, err := ParseQueryDecimal(r, "price_min")
	if err != nil || got == nil || got.String() != "1500.5" {
		t.Fatalf("got %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	if got, err := ParseQueryDecimal(r, "price_min"); err != nil || got != nil {
		t.Fatalf("absent parameter should be nil, got %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?price_min=-5", nil)
	if _, err := ParseQueryDecimal(r, "price_min"); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?offers=true", nil)
	if got, err := ParseQueryBool(r, "offers"); err != nil || !got {
		t.Fatalf("got %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?offers=nope", nil)
	if _, err := ParseQueryBool(r, "offers"); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hola  ", 0); got != "hola" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
