package models

type WishlistEntry struct {
	ProductID any    `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Price     any    `json:"price,omitempty"`
	Image     string `json:"image,omitempty"`
}

type WishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type WishlistResponse struct {
	Items []WishlistEntry `json:"items"`
	Count int             `json:"count"`
}

type WishlistToggleResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
	Message    string `json:"message"`
}
