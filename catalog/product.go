package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Product is a normalized, read-only catalog record. Instances come either
// from the assistant service reply or from the local catalog store, and are
// scoped to the message that carries them.
type Product struct {
	ID              int64    `json:"id,omitempty"`
	BrandName       string   `json:"brand_name"`
	DisplayName     string   `json:"display_name"`
	Price           float64  `json:"price"`
	QualityScore    *float64 `json:"quality_score,omitempty"`
	ProcessorBrand  string   `json:"processor_brand,omitempty"`
	RAMCapacityGB   Flexible `json:"ram_capacity_gb,omitempty"`
	InternalStorage Flexible `json:"internal_storage_gb,omitempty"`
	ScreenSize      Flexible `json:"screen_size_inches,omitempty"`
	Has5G           *bool    `json:"has_5g,omitempty"`
	HasNFC          *bool    `json:"has_nfc,omitempty"`
	Images          Images   `json:"images,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}

type Images struct {
	Thumbnails []string `json:"thumbnails,omitempty"`
	Previews   []string `json:"previews,omitempty"`
}

// FullName joins brand and display name for listings and card headers.
func (p Product) FullName() string {
	name := strings.TrimSpace(p.BrandName + " " + p.DisplayName)
	if name == "" {
		return "Unknown product"
	}
	return name
}

// ImageSource returns the preferred image URL: first thumbnail when
// available, otherwise the flat image_url field. Empty when the record
// carries no image at all.
func (p Product) ImageSource() string {
	if len(p.Images.Thumbnails) > 0 && p.Images.Thumbnails[0] != "" {
		return p.Images.Thumbnails[0]
	}
	return p.ImageURL
}

// FirstNonEmpty picks a display name from the service's two naming
// conventions: model wins over title.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Flexible is a spec value that arrives as either a JSON string or a JSON
// number (the catalog feed mixes both, e.g. ram_capacity: 8 vs "8/12").
type Flexible struct {
	text    string
	number  float64
	numeric bool
	present bool
}

// FlexibleNumber builds a numeric Flexible, mainly for catalog rows and tests.
func FlexibleNumber(n float64) Flexible {
	return Flexible{number: n, numeric: true, present: true}
}

// FlexibleString builds a textual Flexible. Empty input stays absent.
func FlexibleString(s string) Flexible {
	if strings.TrimSpace(s) == "" {
		return Flexible{}
	}
	return Flexible{text: s, present: true}
}

func (f Flexible) IsSet() bool {
	return f.present
}

// String renders the bare value without any unit.
func (f Flexible) String() string {
	if !f.present {
		return ""
	}
	if f.numeric {
		return strconv.FormatFloat(f.number, 'f', -1, 64)
	}
	return f.text
}

// WithUnit renders the value, appending the unit only for numeric values.
// Textual values are assumed to carry their own formatting.
func (f Flexible) WithUnit(unit string) string {
	if !f.present {
		return ""
	}
	if f.numeric {
		return strconv.FormatFloat(f.number, 'f', -1, 64) + " " + unit
	}
	return f.text
}

func (f *Flexible) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = Flexible{}
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*f = FlexibleString(text)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value is neither string nor number: %w", err)
	}
	*f = FlexibleNumber(n)
	return nil
}

func (f Flexible) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}
	if f.numeric {
		return json.Marshal(f.number)
	}
	return json.Marshal(f.text)
}
