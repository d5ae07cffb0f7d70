package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/breadtasks/breadtasks/types"
)

func TestTaskText(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Buy milk", want: "Buy milk"},
		{name: "trims", input: "  Buy milk \n", want: "Buy milk"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: " \t ", wantErr: true},
		{name: "long text is kept", input: strings.Repeat("x", 2000), want: strings.Repeat("x", 2000)},
		{name: "unicode", input: " Brot kaufen 🍞 ", want: "Brot kaufen 🍞"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TaskText(tc.input)
			if tc.wantErr {
				if !errors.Is(err, types.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCategoryName(t *testing.T) {
	if got, err := CategoryName("  Work "); err != nil || got != "Work" {
		t.Errorf("expected Work, got %q (%v)", got, err)
	}
	if _, err := CategoryName("   "); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected validation error for blank name, got %v", err)
	}
	if _, err := CategoryName("Home\nOffice"); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected validation error for line break, got %v", err)
	}

	var verr *types.ValidationError
	_, err := CategoryName(strings.Repeat("é", maxCategoryLength+5))
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "category" {
		t.Errorf("expected field category, got %s", verr.Field)
	}
}
