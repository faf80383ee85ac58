// Package catalog reshapes backend product and category records into the
// canonical shapes the storefront consumes.
package catalog

import (
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
)

// RawRecord is one decoded backend record.
type RawRecord = map[string]any

// Normalizer resolves image paths against the configured API base.
type Normalizer struct {
	apiBase string
}

func NewNormalizer(apiBase string) *Normalizer {
	return &Normalizer{apiBase: apiBase}
}

func (n *Normalizer) ImageURL(path string) string {
	return ResolveImageURL(n.apiBase, path)
}

// Product maps one backend record. It returns nil for a nil record; the id may be
// empty, callers filter on it.
func (n *Normalizer) Product(raw RawRecord) *models.Product {
	if raw == nil {
		return nil
	}

	images := n.images(raw)

	categorySlug, categoryName := "", ""
	if category, ok := raw["category_id"].(map[string]any); ok {
		categorySlug = stringField(category, "slug")
		categoryName = stringField(category, "name")
	}
	if categorySlug == "" {
		categorySlug = stringField(raw, "category", "category_slug")
	}
	if categoryName == "" {
		categoryName = stringField(raw, "category_name")
	}

	var stock float64
	if value, ok := raw["stock_quantity"]; ok {
		stock = Number(value, 0)
	} else {
		stock = Number(raw["stockQuantity"], 0)
	}

	features, _ := raw["features"].([]any)
	if features == nil {
		features = []any{}
	}

	return &models.Product{
		ID:            productID(raw),
		Slug:          stringField(raw, "slug"),
		Name:          stringField(raw, "name"),
		Category:      categorySlug,
		CategoryName:  categoryName,
		Description:   stringField(raw, "description"),
		Price:         Number(raw["price"], 0),
		DiscountPrice: optionalNumber(raw, "discount_price"),
		Discount:      optionalNumber(raw, "discount"),
		Rating:        Number(raw["rating"], 0),
		Reviews:       Number(firstTruthy(raw, "reviews_count", "reviews"), 0),
		InStock:       boolField(raw, "in_stock", "inStock", true),
		StockQuantity: stock,
		Badge:         stringField(raw, "badge"),
		IsActive:      boolField(raw, "is_active", "isActive", true),
		Features:      features,
		Images:        images.all,
		Image:         images.primary,
	}
}

type productImages struct {
	primary string
	all     []string
}

func (n *Normalizer) images(raw RawRecord) productImages {
	list, _ := raw["images"].([]any)

	primaryPath := stringField(raw, "image")
	if primaryPath == "" && len(list) > 0 {
		primaryPath, _ = list[0].(string)
	}

	primary := n.ImageURL(primaryPath)

	all := make([]string, 0, len(list))
	for _, entry := range list {
		path, ok := entry.(string)
		if !ok {
			continue
		}
		all = append(all, n.ImageURL(path))
	}

	if len(all) == 0 {
		all = append(all, primary)
	}

	return productImages{primary: primary, all: all}
}

func productID(raw RawRecord) string {
	if id := Identifier(raw["_id"]); id != "" {
		return id
	}
	return Identifier(raw["id"])
}

// Products maps a backend collection, dropping records without an id.
func (n *Normalizer) Products(raws []RawRecord) []*models.Product {
	products := make([]*models.Product, 0, len(raws))

	for _, raw := range raws {
		product := n.Product(raw)
		if product == nil || product.ID == "" {
			continue
		}
		products = append(products, product)
	}

	return products
}

func (n *Normalizer) Category(raw RawRecord) *models.Category {
	if raw == nil {
		return nil
	}

	id := productID(raw)
	slug := stringField(raw, "slug")
	if slug == "" {
		slug = id
	}

	image := ""
	if path := stringField(raw, "image"); path != "" {
		image = n.ImageURL(path)
	}

	return &models.Category{
		ID:          slug,
		Name:        stringField(raw, "name"),
		Slug:        slug,
		Icon:        stringField(raw, "icon"),
		Image:       image,
		Description: stringField(raw, "description"),
		Color:       stringField(raw, "color"),
	}
}

// Categories maps a backend collection, dropping records without an id or slug.
func (n *Normalizer) Categories(raws []RawRecord) []*models.Category {
	categories := make([]*models.Category, 0, len(raws))

	for _, raw := range raws {
		category := n.Category(raw)
		if category == nil || category.ID == "" {
			continue
		}
		categories = append(categories, category)
	}

	return categories
}
