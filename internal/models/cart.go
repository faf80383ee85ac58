package models

// CartItem is one line of the cart cookie. The JSON shape is the one the storefront
// views read, so field names stay camelCase.
type CartItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Quantity      int      `json:"quantity"`
}

// UnitPrice is the discount price when one is set, else the list price.
func (i CartItem) UnitPrice() float64 {
	if i.DiscountPrice != nil && *i.DiscountPrice > 0 {
		return *i.DiscountPrice
	}
	return i.Price
}

type CartResponse struct {
	Items    []CartItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal float64    `json:"subtotal"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
