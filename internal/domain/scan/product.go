// Package scan assembles scan results and holds the product data a barcode
// scan resolves against.
package scan

import "strings"

// Source records how the ingredient text of a scan was obtained.
type Source string

const (
	SourceImage      Source = "image"
	SourceBarcode    Source = "barcode"
	SourceLiveCamera Source = "live_camera"
	SourceManual     Source = "manual"
)

// IsValid reports whether s is one of the known sources.
func (s Source) IsValid() bool {
	switch s {
	case SourceImage, SourceBarcode, SourceLiveCamera, SourceManual:
		return true
	}
	return false
}

// DefaultProductName is the label given to a scan that carries no product
// name of its own.
func (s Source) DefaultProductName() string {
	switch s {
	case SourceImage:
		return "Scanned Product"
	case SourceLiveCamera:
		return "Live Scanned Product"
	case SourceManual:
		return "Manually Entered Product"
	default:
		return UnknownProductName
	}
}

// Placeholder values for barcodes missing from the product catalog.
const (
	UnknownProductName = "Unknown"
	UnknownBatchCode   = "Unknown"
)

// Product is a packaged food known by barcode.
type Product struct {
	Barcode     string   `json:"barcode"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	BatchCode   string   `json:"batch_code"`
}

// Alternative is a healthier product suggested in place of a scanned one.
type Alternative struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Score       int      `json:"score"`
}

// ProductCatalog looks products up by barcode and alternatives by product
// name. It is immutable after construction.
type ProductCatalog struct {
	byBarcode    map[string]Product
	alternatives map[string][]Alternative
}

// NewProductCatalog indexes products by trimmed barcode. Alternatives are
// keyed by product name.
func NewProductCatalog(products []Product, alternatives map[string][]Alternative) *ProductCatalog {
	c := &ProductCatalog{
		byBarcode:    make(map[string]Product, len(products)),
		alternatives: make(map[string][]Alternative, len(alternatives)),
	}
	for _, p := range products {
		p.Barcode = strings.TrimSpace(p.Barcode)
		c.byBarcode[p.Barcode] = p
	}
	for name, alts := range alternatives {
		c.alternatives[name] = alts
	}
	return c
}

// DefaultProductCatalog returns the sample products shipped with the binary.
func DefaultProductCatalog() *ProductCatalog {
	return NewProductCatalog(
		[]Product{
			{Barcode: "012345678905", Name: "Sample Soda", Ingredients: []string{"sugar", "e102", "water", "e621"}, BatchCode: "2024-10-01"},
			{Barcode: "987654321098", Name: "Healthy Snack Bar", Ingredients: []string{"oats", "honey", "nuts"}, BatchCode: "2025-01-01"},
		},
		map[string][]Alternative{
			"Sample Soda":       {{Name: "Natural Juice", Ingredients: []string{"water", "fruit juice"}, Score: 95}},
			"Healthy Snack Bar": {{Name: "Organic Granola", Ingredients: []string{"oats", "maple syrup"}, Score: 98}},
		},
	)
}

// Lookup returns the product registered under barcode.
func (c *ProductCatalog) Lookup(barcode string) (Product, bool) {
	p, ok := c.byBarcode[strings.TrimSpace(barcode)]
	return p, ok
}

// Resolve returns the product registered under barcode, or an Unknown
// product with no ingredients.
func (c *ProductCatalog) Resolve(barcode string) Product {
	if p, ok := c.Lookup(barcode); ok {
		return p
	}
	return Product{
		Barcode:     strings.TrimSpace(barcode),
		Name:        UnknownProductName,
		Ingredients: []string{},
		BatchCode:   UnknownBatchCode,
	}
}

// AlternativesFor returns the alternatives listed for a product name.
func (c *ProductCatalog) AlternativesFor(productName string) []Alternative {
	alts := c.alternatives[productName]
	out := make([]Alternative, len(alts))
	copy(out, alts)
	return out
}

//Personal.AI order the ending
