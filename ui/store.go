package ui

import "shopmate/catalog"

// Store tracks the chat overlay's visibility and which product, if any,
// the shopper had selected when opening it. The storefront and the overlay
// both read from it so focus handling stays in one place.
type Store struct {
	open     bool
	selected *catalog.Product
}

func (s *Store) Open(selected *catalog.Product) {
	s.open = true
	s.selected = selected
}

func (s *Store) Close() {
	s.open = false
	s.selected = nil
}

func (s *Store) IsOpen() bool {
	return s.open
}

// Selected returns the product the overlay was opened from, or nil when it
// was opened from the general assistant key.
func (s *Store) Selected() *catalog.Product {
	return s.selected
}
