package payment

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIntentURI(t *testing.T) {
	uri := IntentURI("cafe@upi", "Elysian Cafe", decimal.NewFromInt(130), "Cafe order #7", "abc-123")

	if !strings.HasPrefix(uri, "upi://pay?") {
		t.Fatalf("unexpected scheme: %s", uri)
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := parsed.Query()

	checks := map[string]string{
		"pa": "cafe@upi",
		"pn": "Elysian Cafe",
		"am": "130.00",
		"cu": "INR",
		"tn": "Cafe order #7",
		"tr": "abc-123",
	}
	for k, want := range checks {
		if got := q.Get(k); got != want {
			t.Errorf("%s: got %q, want %q", k, got, want)
		}
	}
}

func TestIntentURIOmitsEmptyFields(t *testing.T) {
	uri := IntentURI("cafe@upi", "", decimal.RequireFromString("59.5"), "", "")

	parsed, err := url.Parse(uri)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := parsed.Query()

	if q.Get("am") != "59.50" {
		t.Errorf("am: got %q, want 59.50", q.Get("am"))
	}
	for _, k := range []string{"pn", "tn", "tr"} {
		if q.Has(k) {
			t.Errorf("%s should be absent, got %q", k, q.Get(k))
		}
	}
}
