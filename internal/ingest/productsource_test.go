package ingest

import (
	"strings"
	"testing"
)

const sampleCatalogYAML = `
source: demo-catalog
products:
  - name: Trailblazer 5000
    description: "  A rugged hiking boot.  "
    sku: TB-5000
    category: footwear
    price: 129.99
    attributes:
      waterproof: true
  - name: Basic Tee
    description: A plain cotton t-shirt.
`

func TestLoadProductCatalogFromReader(t *testing.T) {
	catalog, err := LoadProductCatalogFromReader(strings.NewReader(sampleCatalogYAML))
	if err != nil {
		t.Fatalf("LoadProductCatalogFromReader() error = %v", err)
	}
	if catalog.Source != "demo-catalog" {
		t.Errorf("catalog.Source = %q, want %q", catalog.Source, "demo-catalog")
	}
	if len(catalog.Products) != 2 {
		t.Fatalf("len(catalog.Products) = %d, want 2", len(catalog.Products))
	}
	first := catalog.Products[0]
	if first.Name != "Trailblazer 5000" || first.SKU != "TB-5000" || first.Category != "footwear" {
		t.Errorf("first product = %+v, missing expected fields", first)
	}
	if first.Price == nil || *first.Price != 129.99 {
		t.Errorf("first.Price = %v, want 129.99", first.Price)
	}
}

func TestLoadProductCatalogFromReader_RejectsUnknownFields(t *testing.T) {
	_, err := LoadProductCatalogFromReader(strings.NewReader("source: x\nunknown_field: true\nproducts: []\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown top-level field, got nil")
	}
}

func TestProductCatalogFile_Items(t *testing.T) {
	catalog, err := LoadProductCatalogFromReader(strings.NewReader(sampleCatalogYAML))
	if err != nil {
		t.Fatalf("LoadProductCatalogFromReader() error = %v", err)
	}

	items := catalog.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.NodeType != "product" || first.ContentType != "text" {
		t.Errorf("first item type fields = %+v", first)
	}
	if first.PageContent != "A rugged hiking boot." {
		t.Errorf("first.PageContent = %q, want trimmed description", first.PageContent)
	}
	if first.Metadata["sku"] != "TB-5000" || first.Metadata["category"] != "footwear" {
		t.Errorf("first.Metadata = %+v, missing sku/category", first.Metadata)
	}
	if first.Metadata["price"] != 129.99 {
		t.Errorf("first.Metadata[price] = %v, want 129.99", first.Metadata["price"])
	}
	if first.Metadata["waterproof"] != true {
		t.Errorf("first.Metadata[waterproof] = %v, want true (folded from attributes)", first.Metadata["waterproof"])
	}

	second := items[1]
	if _, ok := second.Metadata["sku"]; ok {
		t.Errorf("second.Metadata should omit sku when absent from the catalog entry, got %+v", second.Metadata)
	}
}
