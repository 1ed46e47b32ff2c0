package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/sahilm/fuzzy"
	_ "modernc.org/sqlite"

	"shopmate/catalog"
)

// CatalogStore is the local product catalog backing the browse view and the
// product-detail enrichment of the chat widget.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(dataDir string) (*CatalogStore, error) {
	dbPath := filepath.Join(dataDir, "catalog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &CatalogStore{db: db}

	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (cs *CatalogStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		brand_name TEXT NOT NULL,
		model TEXT NOT NULL,
		title TEXT,
		price REAL NOT NULL,
		specs_score REAL,
		processor_brand TEXT,
		ram_capacity TEXT,
		internal_memory TEXT,
		screen_size TEXT,
		has_5g INTEGER,
		has_nfc INTEGER,
		image_url TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand_name);
	`

	_, err := cs.db.Exec(schema)
	return err
}

// Lookup returns the full record for a selected product, or nil when the
// catalog has no row for the id.
func (cs *CatalogStore) Lookup(id int64) (*catalog.Product, error) {
	query := `
	SELECT id, brand_name, model, title, price, specs_score, processor_brand,
	       ram_capacity, internal_memory, screen_size, has_5g, has_nfc, image_url
	FROM products
	WHERE id = ?
	`

	p, err := scanProduct(cs.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// List returns all products ordered by brand then name.
func (cs *CatalogStore) List() ([]catalog.Product, error) {
	query := `
	SELECT id, brand_name, model, title, price, specs_score, processor_brand,
	       ram_capacity, internal_memory, screen_size, has_5g, has_nfc, image_url
	FROM products
	ORDER BY brand_name, model
	`

	rows, err := cs.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

// Count returns the number of catalog rows, used to decide whether the
// starter catalog needs seeding.
func (cs *CatalogStore) Count() (int, error) {
	var n int
	err := cs.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// Save inserts or updates a product row.
func (cs *CatalogStore) Save(p catalog.Product) error {
	query := `
	INSERT OR REPLACE INTO products
		(id, brand_name, model, title, price, specs_score, processor_brand,
		 ram_capacity, internal_memory, screen_size, has_5g, has_nfc, image_url)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var id interface{}
	if p.ID != 0 {
		id = p.ID
	}

	_, err := cs.db.Exec(query,
		id,
		p.BrandName,
		p.DisplayName,
		p.DisplayName,
		p.Price,
		nullFloat(p.QualityScore),
		p.ProcessorBrand,
		nullFlexible(p.RAMCapacityGB),
		nullFlexible(p.InternalStorage),
		nullFlexible(p.ScreenSize),
		nullBool(p.Has5G),
		nullBool(p.HasNFC),
		p.ImageURL,
	)

	return err
}

func (cs *CatalogStore) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p         catalog.Product
		model     string
		title     sql.NullString
		score     sql.NullFloat64
		processor sql.NullString
		ram       sql.NullString
		memory    sql.NullString
		screen    sql.NullString
		has5G     sql.NullBool
		hasNFC    sql.NullBool
		imageURL  sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.BrandName,
		&model,
		&title,
		&p.Price,
		&score,
		&processor,
		&ram,
		&memory,
		&screen,
		&has5G,
		&hasNFC,
		&imageURL,
	)
	if err != nil {
		return nil, err
	}

	p.DisplayName = catalog.FirstNonEmpty(model, title.String)
	if score.Valid {
		v := score.Float64
		p.QualityScore = &v
	}
	p.ProcessorBrand = processor.String
	p.RAMCapacityGB = catalog.FlexibleString(ram.String)
	p.InternalStorage = catalog.FlexibleString(memory.String)
	p.ScreenSize = catalog.FlexibleString(screen.String)
	if has5G.Valid {
		v := has5G.Bool
		p.Has5G = &v
	}
	if hasNFC.Valid {
		v := hasNFC.Bool
		p.HasNFC = &v
	}
	p.ImageURL = imageURL.String

	return &p, nil
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullFlexible(v catalog.Flexible) interface{} {
	if !v.IsSet() {
		return nil
	}
	return v.String()
}

// FilterProducts fuzzy-matches the filter string against "brand name"
// targets and returns the matching products in match order.
func FilterProducts(products []catalog.Product, filter string) []catalog.Product {
	if filter == "" {
		return products
	}

	targets := make([]string, len(products))
	for i, p := range products {
		targets[i] = p.FullName()
	}

	matches := fuzzy.Find(filter, targets)
	filtered := make([]catalog.Product, len(matches))
	for i, match := range matches {
		filtered[i] = products[match.Index]
	}

	return filtered
}
