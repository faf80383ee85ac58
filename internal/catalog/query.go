package catalog

import (
	"sort"
	"strings"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const AllCategories = "all"

// Filter applies the product listing query. The input slice is not modified.
func Filter(products []*models.Product, filter models.ProductFilter) []*models.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		if filter.Category != "" && filter.Category != AllCategories && p.Category != filter.Category {
			continue
		}

		price := p.EffectivePrice()
		if filter.MinPrice != nil && price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && price > *filter.MaxPrice {
			continue
		}

		out = append(out, p)
	}

	Sort(out, filter.Sort)

	return out
}

// Sort orders products in place. Unknown keys sort by name.
func Sort(products []*models.Product, key string) {
	switch key {
	case models.SortByPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case models.SortByPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	case models.SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// FindByID matches ids as strings first, then numerically so "07" finds "7".
func FindByID(products []*models.Product, id string) *models.Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}

	want := Number(id, -1)
	if want <= 0 {
		return nil
	}

	for _, p := range products {
		if Number(p.ID, -2) == want {
			return p
		}
	}

	return nil
}
