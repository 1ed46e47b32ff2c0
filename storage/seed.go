package storage

import (
	"fmt"

	"shopmate/catalog"
)

// SeedIfEmpty loads the starter catalog on first run so the browse view has
// something to show before a real feed is imported.
func (cs *CatalogStore) SeedIfEmpty() error {
	count, err := cs.Count()
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range starterCatalog() {
		if err := cs.Save(p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.FullName(), err)
		}
	}

	return nil
}

func starterCatalog() []catalog.Product {
	return []catalog.Product{
		{
			BrandName:       "Samsung",
			DisplayName:     "Galaxy S23",
			Price:           799,
			QualityScore:    ptrFloat(86),
			ProcessorBrand:  "snapdragon",
			RAMCapacityGB:   catalog.FlexibleNumber(8),
			InternalStorage: catalog.FlexibleNumber(128),
			ScreenSize:      catalog.FlexibleNumber(6.1),
			Has5G:           ptrBool(true),
			HasNFC:          ptrBool(true),
		},
		{
			BrandName:       "Apple",
			DisplayName:     "iPhone 15",
			Price:           829,
			QualityScore:    ptrFloat(88),
			ProcessorBrand:  "bionic",
			RAMCapacityGB:   catalog.FlexibleNumber(6),
			InternalStorage: catalog.FlexibleNumber(128),
			ScreenSize:      catalog.FlexibleNumber(6.1),
			Has5G:           ptrBool(true),
			HasNFC:          ptrBool(true),
		},
		{
			BrandName:       "Google",
			DisplayName:     "Pixel 8",
			Price:           699,
			QualityScore:    ptrFloat(84),
			ProcessorBrand:  "tensor",
			RAMCapacityGB:   catalog.FlexibleNumber(8),
			InternalStorage: catalog.FlexibleNumber(128),
			ScreenSize:      catalog.FlexibleNumber(6.2),
			Has5G:           ptrBool(true),
			HasNFC:          ptrBool(true),
		},
		{
			BrandName:       "OnePlus",
			DisplayName:     "Nord CE 3",
			Price:           299,
			QualityScore:    ptrFloat(74),
			ProcessorBrand:  "snapdragon",
			RAMCapacityGB:   catalog.FlexibleString("8/12"),
			InternalStorage: catalog.FlexibleNumber(256),
			ScreenSize:      catalog.FlexibleNumber(6.7),
			Has5G:           ptrBool(true),
			HasNFC:          ptrBool(false),
		},
		{
			BrandName:      "Nokia",
			DisplayName:    "G22",
			Price:          179,
			QualityScore:   ptrFloat(61),
			ProcessorBrand: "unisoc",
			RAMCapacityGB:  catalog.FlexibleNumber(4),
			ScreenSize:     catalog.FlexibleNumber(6.5),
			Has5G:          ptrBool(false),
			HasNFC:         ptrBool(true),
		},
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}

func ptrBool(v bool) *bool {
	return &v
}
