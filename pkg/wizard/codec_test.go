package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeValues_SkipsUnsupportedKinds(t *testing.T) {
	data, err := EncodeValues(Values{"name": "Ada", "agree": true, "age": 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeValues(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(Values{"name": "Ada", "agree": true}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeValues_Rejects(t *testing.T) {
	for _, payload := range []string{"", "null", "[]", `"text"`, "{"} {
		if _, err := DecodeValues([]byte(payload)); err == nil {
			t.Fatalf("expected error for %q", payload)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{"theme": "Please select a Theme", "agree": "Agree to Terms is required"}
	if got, want := errs.Error(), "Agree to Terms is required; Please select a Theme"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Fatalf("empty errors should render empty")
	}
}
