// Package seed loads the storefront's starting catalog into a product store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Products []productEntry `yaml:"products"`
}

type productEntry struct {
	SKU           string   `yaml:"sku"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Subcategory   string   `yaml:"subcategory"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"originalPrice"`
	Fabric        string   `yaml:"fabric"`
	Fit           string   `yaml:"fit"`
	Colors        []string `yaml:"colors"`
	Sizes         []string `yaml:"sizes"`
	Images        []string `yaml:"images"`
	Tags          []string `yaml:"tags"`
	InStock       *bool    `yaml:"inStock"`
	StockCount    int      `yaml:"stockCount"`
}

// Catalog returns the embedded starting catalog.
func Catalog() ([]models.Product, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document. Products default to in stock when the
// document does not say otherwise.
func Parse(data []byte) ([]models.Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	products := make([]models.Product, 0, len(file.Products))
	for i, entry := range file.Products {
		product, err := entry.toProduct()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, entry.SKU, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (e productEntry) toProduct() (models.Product, error) {
	if strings.TrimSpace(e.SKU) == "" {
		return models.Product{}, errors.New("sku required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return models.Product{}, errors.New("name required")
	}

	price, err := models.NewPrice(e.Price)
	if err != nil {
		return models.Product{}, err
	}

	var original *models.Price
	if e.OriginalPrice != "" {
		parsed, err := models.NewPrice(e.OriginalPrice)
		if err != nil {
			return models.Product{}, err
		}
		original = &parsed
	}

	inStock := true
	if e.InStock != nil {
		inStock = *e.InStock
	}

	return models.Product{
		SKU:           e.SKU,
		Name:          e.Name,
		Description:   e.Description,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		Price:         price,
		OriginalPrice: original,
		Fabric:        e.Fabric,
		Fit:           e.Fit,
		Colors:        optionalList(e.Colors),
		Sizes:         optionalList(e.Sizes),
		Images:        optionalList(e.Images),
		Tags:          optionalList(e.Tags),
		InStock:       inStock,
		StockCount:    e.StockCount,
	}, nil
}

func optionalList(values []string) models.StringList {
	if len(values) == 0 {
		return nil
	}
	return models.StringList(values)
}

// Load inserts the embedded catalog into products unless the store already
// holds data. It returns the number of products inserted.
func Load(ctx context.Context, products store.ProductStore) (int, error) {
	existing, err := products.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		zap.L().Info("catalog already populated, skipping seed", zap.Int("products", existing))
		return 0, nil
	}

	catalog, err := Catalog()
	if err != nil {
		return 0, err
	}

	for _, product := range catalog {
		if _, err := products.Create(ctx, product); err != nil {
			return 0, fmt.Errorf("insert %s: %w", product.SKU, err)
		}
	}

	zap.L().Info("catalog seeded", zap.Int("products", len(catalog)))
	return len(catalog), nil
}
