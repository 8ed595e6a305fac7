package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProductCatalogFile is the top-level shape of a YAML product-catalog
// file: a named source plus a flat list of products, supplementing
// spec.md's JSON-document-only product input with the richer catalog
// loading the original project's ingestion scripts supported.
type ProductCatalogFile struct {
	Source   string              `yaml:"source"`
	Products []ProductDefinition `yaml:"products"`
}

// ProductDefinition is one catalog entry; Attributes carries any
// additional fields (brand, release_year, ...) the catalog author wants
// attached as product metadata.
type ProductDefinition struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	SKU         string         `yaml:"sku"`
	Category    string         `yaml:"category"`
	Price       *float64       `yaml:"price"`
	Attributes  map[string]any `yaml:"attributes"`
}

// LoadProductCatalogFile reads and parses a YAML product-catalog file from
// disk.
func LoadProductCatalogFile(path string) (*ProductCatalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open product catalog %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	catalog, err := LoadProductCatalogFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("ingest: parse product catalog %q: %w", path, err)
	}
	return catalog, nil
}

// LoadProductCatalogFromReader parses product-catalog YAML from an
// io.Reader, rejecting unknown top-level keys to catch typos.
func LoadProductCatalogFromReader(r io.Reader) (*ProductCatalogFile, error) {
	var catalog ProductCatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("ingest: decode product catalog yaml: %w", err)
	}
	return &catalog, nil
}

// Items converts a parsed catalog into the product Items
// AddDocumentsFromSource expects: one "product" item per entry, with
// SKU/category/price/attributes folded into Metadata the way
// Orchestrator.processProduct reads them back out.
func (c *ProductCatalogFile) Items() []Item {
	items := make([]Item, 0, len(c.Products))
	for _, p := range c.Products {
		meta := map[string]any{"name": p.Name}
		if p.SKU != "" {
			meta["sku"] = p.SKU
		}
		if p.Category != "" {
			meta["category"] = p.Category
		}
		if p.Price != nil {
			meta["price"] = *p.Price
		}
		for k, v := range p.Attributes {
			meta[k] = v
		}
		items = append(items, Item{
			NodeType:    "product",
			ContentType: "text",
			PageContent: strings.TrimSpace(p.Description),
			Metadata:    meta,
		})
	}
	return items
}
