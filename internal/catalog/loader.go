// Package catalog loads the product catalog from its tabular source.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/skinpro/backend/internal/domain"
)

// Required catalog columns, matched by header name (order-independent)
const (
	ColumnName          = "Product Name"
	ColumnBrand         = "Product Brand"
	ColumnSkinType      = "Skin Type Compatibility"
	ColumnScent         = "Scent"
	ColumnEffectiveness = "Effectiveness"
	ColumnEaseOfUse     = "Ease of Use"
	ColumnReviews       = "Reviews"
	ColumnImageLink     = "Image Link"
	ColumnProductLink   = "Product Link"
)

var requiredColumns = []string{
	ColumnName, ColumnBrand, ColumnSkinType, ColumnScent,
	ColumnEffectiveness, ColumnEaseOfUse, ColumnReviews,
	ColumnImageLink, ColumnProductLink,
}

// Catalog is the in-memory product table. It is loaded once per process
// and read-only afterwards, so concurrent readers need no locking.
type Catalog struct {
	products []domain.Product
}

// Load reads the catalog CSV at path. Missing cells become empty strings
// and every row gets its CombinedText computed up front. An unreadable
// file or a missing required column is a hard error: no partial catalog
// is ever returned.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer file.Close()

	catalog, err := Parse(file)
	if err != nil {
		return nil, err
	}

	log.Printf("[CATALOG] Loaded %d products from %s", catalog.Len(), path)
	return catalog, nil
}

// Parse reads a catalog from any CSV stream. Split out from Load so tests
// can feed in-memory data.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be short; missing cells coerce to ""

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrCatalogUnavailable, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrMissingColumn, required)
		}
	}

	var products []domain.Product
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row %d: %v", domain.ErrCatalogUnavailable, len(products)+2, err)
		}

		cell := func(column string) string {
			idx := columns[column]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		product := domain.Product{
			Name:                  cell(ColumnName),
			Brand:                 cell(ColumnBrand),
			SkinTypeCompatibility: cell(ColumnSkinType),
			Scent:                 cell(ColumnScent),
			Effectiveness:         cell(ColumnEffectiveness),
			EaseOfUse:             cell(ColumnEaseOfUse),
			Reviews:               cell(ColumnReviews),
			ImageLink:             cell(ColumnImageLink),
			ProductLink:           cell(ColumnProductLink),
		}
		product.CombinedText = combinedText(product)

		products = append(products, product)
	}

	return &Catalog{products: products}, nil
}

// combinedText concatenates the free-text signal fields for vectorization.
// Every field is already non-nil (empty string at worst), so joining is safe.
func combinedText(p domain.Product) string {
	return strings.Join([]string{
		p.Reviews,
		p.SkinTypeCompatibility,
		p.Name,
		p.Brand,
		p.Scent,
		p.Effectiveness,
	}, " ")
}

// Len returns the number of products in the catalog
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns the full product table in catalog order. Callers must
// treat the slice as read-only.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Names returns the unique product names in first-occurrence order,
// suitable for populating a selection dropdown.
func (c *Catalog) Names() []string {
	seen := make(map[string]bool, len(c.products))
	names := make([]string, 0, len(c.products))
	for _, p := range c.products {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		names = append(names, p.Name)
	}
	return names
}

// FindByName returns the first product with the given name, or false if
// the catalog does not contain it.
func (c *Catalog) FindByName(name string) (domain.Product, bool) {
	for _, p := range c.products {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Product{}, false
}
