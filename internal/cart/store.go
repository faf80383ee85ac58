// Package cart holds the shopper's cart and persists it to the `cart` cookie.
package cart

import (
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
)

// Persister is told about every change to the cart.
type Persister interface {
	Persist(items []models.CartItem) error
}

// Store is the list of items the shopper intends to buy. Ids are unique and every
// quantity is at least one.
type Store struct {
	items     []models.CartItem
	persister Persister
}

// NewStore rehydrates a store from persisted items, repairing anything that would
// break its invariants.
func NewStore(items []models.CartItem, persister Persister) *Store {
	s := &Store{persister: persister}

	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		if i := s.index(item.ID); i >= 0 {
			s.items[i].Quantity += item.Quantity
			continue
		}
		s.items = append(s.items, item)
	}

	return s
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add increments the quantity of an existing line or appends a new one.
func (s *Store) Add(item models.CartItem, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	if i := s.index(item.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		item.Quantity = quantity
		s.items = append(s.items, item)
	}

	return s.persist()
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(id)
	}

	i := s.index(id)
	if i < 0 {
		return nil
	}

	s.items[i].Quantity = quantity

	return s.persist()
}

func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}

	s.items = append(s.items[:i], s.items[i+1:]...)

	return s.persist()
}

func (s *Store) Clear() error {
	s.items = nil

	return s.persist()
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Contains(id string) bool {
	return s.index(id) >= 0
}

func (s *Store) Len() int {
	return len(s.items)
}

// Total sums unit price times quantity, the unit price being the discount price when set.
func (s *Store) Total() float64 {
	var total float64

	for _, item := range s.items {
		total += item.UnitPrice() * float64(item.Quantity)
	}

	return total
}

// Count sums the quantities.
func (s *Store) Count() int {
	var count int

	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

func (s *Store) Response() models.CartResponse {
	return models.CartResponse{
		Items:    s.Items(),
		Count:    s.Count(),
		Subtotal: s.Total(),
	}
}

func (s *Store) persist() error {
	if s.persister == nil {
		return nil
	}

	return s.persister.Persist(s.Items())
}
