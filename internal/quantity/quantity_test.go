package quantity_test

import (
	"testing"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/quantity"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"numeric", "100", "50", "150"},
		{"fractional", "0.5", "0.25", "0.75"},
		{"empty left", "", "5", "5"},
		{"empty right", "5", "", "5"},
		{"compound right", "100", "1à3", "100 + 1à3"},
		{"both compound", "a pinch", "a dash", "a pinch + a dash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantity.Sum(tt.a, tt.b); got != tt.want {
				t.Errorf("Sum(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"numeric", "150", "50", "100"},
		{"to zero", "100", "100", ""},
		{"below zero", "50", "100", ""},
		{"equal strings", "1à3", "1à3", ""},
		{"merged suffix", "100 + 1à3", "1à3", "100"},
		{"merged prefix", "1à3 + 100", "1à3", "100"},
		{"merged middle", "2 + 1à3 + 4", "1à3", "2 + 4"},
		{"unrelated strings", "a pinch", "a dash", "a pinch"},
		{"empty subtrahend", "100", "", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantity.Subtract(tt.a, tt.b); got != tt.want {
				t.Errorf("Subtract(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScaleForPersons(t *testing.T) {
	tests := []struct {
		name        string
		quantity    string
		old, target int
		want        string
	}{
		{"double", "100", 2, 4, "200"},
		{"halve", "100", 4, 2, "50"},
		{"fractional result", "1", 4, 2, "0.5"},
		{"compound passes through", "1à3", 2, 4, "1à3"},
		{"invalid old persons", "100", 0, 4, "100"},
		{"invalid new persons", "100", 2, 0, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantity.ScaleForPersons(tt.quantity, tt.old, tt.target); got != tt.want {
				t.Errorf("ScaleForPersons(%q, %d, %d) = %q, want %q",
					tt.quantity, tt.old, tt.target, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, ok := quantity.Parse("100"); !ok {
		t.Error("expected '100' to parse as numeric")
	}
	if _, ok := quantity.Parse(" 2.5 "); !ok {
		t.Error("expected padded numeric to parse")
	}
	if _, ok := quantity.Parse("1à3"); ok {
		t.Error("expected '1à3' to be non-numeric")
	}
}
