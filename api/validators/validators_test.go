package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/partcustody/pkg/enums"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
)

type samplePayload struct {
	Type string   `json:"type" validate:"required,oneof=PICKED_UP RETURNED"`
	IDs  []string `json:"ids" validate:"required,min=1"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"PICKED_UP","ids":["a"],"extra":1}`))
	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"LOST","ids":[]}`))
	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["type"] != "must be one of PICKED_UP RETURNED" {
		t.Fatalf("unexpected type message %q", details["type"])
	}
	if details["ids"] == "" {
		t.Fatalf("expected ids error, got %v", details)
	}
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"RETURNED","ids":["a","b"]}`))
	var dest samplePayload
	if err := DecodeJSONBody(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dest.IDs) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(dest.IDs))
	}
}

func TestParseOrderFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?filter=picked_up", nil)
	filter, err := ParseOrderFilter(req)
	if err != nil || filter != enums.OrderFilterPickedUp {
		t.Fatalf("expected PICKED_UP, got %q err=%v", filter, err)
	}

	filter, err = ParseOrderFilter(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || filter != enums.OrderFilterAll {
		t.Fatalf("expected ALL default, got %q err=%v", filter, err)
	}

	if _, err := ParseOrderFilter(httptest.NewRequest(http.MethodGet, "/?filter=lost", nil)); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSanitizeID(t *testing.T) {
	if got := SanitizeID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed id, got %q", got)
	}
	if got := SanitizeID(strings.Repeat("a", 100)); len(got) != maxIDLength {
		t.Fatalf("expected capped id, got %d chars", len(got))
	}
}
