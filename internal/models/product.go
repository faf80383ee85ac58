package models

// Product is the canonical product shape produced by the catalog normalizer.
type Product struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	CategoryName  string   `json:"categoryName"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	Discount      *float64 `json:"discount"`
	Rating        float64  `json:"rating"`
	Reviews       float64  `json:"reviews"`
	InStock       bool     `json:"inStock"`
	StockQuantity float64  `json:"stockQuantity"`
	Badge         string   `json:"badge"`
	IsActive      bool     `json:"isActive"`
	Features      []any    `json:"features"`
	Images        []string `json:"images"`
	Image         string   `json:"image"`
}

// EffectivePrice mirrors the storefront rule `discountPrice || price`.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}

// CartItem snapshots the product into a cart line.
func (p *Product) CartItem(quantity int) CartItem {
	item := CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: quantity,
	}
	if p.DiscountPrice != nil {
		d := *p.DiscountPrice
		item.DiscountPrice = &d
	}
	return item
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ProductFilter holds the product listing query.
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByRating    = "rating"
)

type ProductListResponse struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
	Shown    int        `json:"shown"`
}
