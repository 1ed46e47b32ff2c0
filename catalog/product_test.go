package catalog

import (
	"encoding/json"
	"testing"
)

func TestFlexibleUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, f Flexible)
	}{
		{
			name:  "plain number",
			input: `8`,
			validate: func(t *testing.T, f Flexible) {
				if !f.IsSet() {
					t.Fatal("expected value to be set")
				}
				if f.String() != "8" {
					t.Errorf("expected %q, got %q", "8", f.String())
				}
				if f.WithUnit("GB") != "8 GB" {
					t.Errorf("expected %q, got %q", "8 GB", f.WithUnit("GB"))
				}
			},
		},
		{
			name:  "fractional number",
			input: `6.1`,
			validate: func(t *testing.T, f Flexible) {
				if f.WithUnit("inches") != "6.1 inches" {
					t.Errorf("expected %q, got %q", "6.1 inches", f.WithUnit("inches"))
				}
			},
		},
		{
			name:  "string value keeps own formatting",
			input: `"8/12"`,
			validate: func(t *testing.T, f Flexible) {
				if !f.IsSet() {
					t.Fatal("expected value to be set")
				}
				if f.WithUnit("GB") != "8/12" {
					t.Errorf("expected no unit on textual value, got %q", f.WithUnit("GB"))
				}
			},
		},
		{
			name:  "null stays absent",
			input: `null`,
			validate: func(t *testing.T, f Flexible) {
				if f.IsSet() {
					t.Error("expected value to be absent")
				}
			},
		},
		{
			name:  "empty string stays absent",
			input: `""`,
			validate: func(t *testing.T, f Flexible) {
				if f.IsSet() {
					t.Error("expected value to be absent")
				}
				if f.String() != "" {
					t.Errorf("expected empty string, got %q", f.String())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flexible
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			tt.validate(t, f)
		})
	}
}

func TestFlexibleUnmarshalRejectsObjects(t *testing.T) {
	var f Flexible
	if err := json.Unmarshal([]byte(`{"a":1}`), &f); err == nil {
		t.Error("expected error for object value")
	}
}

func TestProductFullName(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected string
	}{
		{
			name:     "brand and display name",
			product:  Product{BrandName: "Samsung", DisplayName: "Galaxy S23"},
			expected: "Samsung Galaxy S23",
		},
		{
			name:     "display name only",
			product:  Product{DisplayName: "Galaxy S23"},
			expected: "Galaxy S23",
		},
		{
			name:     "empty record",
			product:  Product{},
			expected: "Unknown product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.FullName(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestProductImageSource(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected string
	}{
		{
			name: "first thumbnail wins",
			product: Product{
				Images:   Images{Thumbnails: []string{"thumb1.jpg", "thumb2.jpg"}},
				ImageURL: "flat.jpg",
			},
			expected: "thumb1.jpg",
		},
		{
			name:     "falls back to flat url",
			product:  Product{ImageURL: "flat.jpg"},
			expected: "flat.jpg",
		},
		{
			name: "empty thumbnail falls back",
			product: Product{
				Images:   Images{Thumbnails: []string{""}},
				ImageURL: "flat.jpg",
			},
			expected: "flat.jpg",
		},
		{
			name:     "no image at all",
			product:  Product{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.ImageSource(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "title"); got != "title" {
		t.Errorf("expected %q, got %q", "title", got)
	}
	if got := FirstNonEmpty("model", "title"); got != "model" {
		t.Errorf("expected %q, got %q", "model", got)
	}
	if got := FirstNonEmpty("  ", ""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
