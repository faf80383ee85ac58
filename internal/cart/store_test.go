package cart_test

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/cart"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPersister struct {
	calls [][]models.CartItem
	err   error
}

func (p *recordingPersister) Persist(items []models.CartItem) error {
	p.calls = append(p.calls, items)
	return p.err
}

func (p *recordingPersister) last() []models.CartItem {
	if len(p.calls) == 0 {
		return nil
	}
	return p.calls[len(p.calls)-1]
}

func price(f float64) *float64 { return &f }

func TestStoreAdd(t *testing.T) {
	t.Run("New item is appended", func(t *testing.T) {
		// Arrange
		persister := &recordingPersister{}
		store := cart.NewStore(nil, persister)

		// Act
		err := store.Add(models.CartItem{ID: "a", Name: "A", Price: 500}, 2)

		// Assert
		require.NoError(t, err)
		require.Len(t, store.Items(), 1)
		assert.Equal(t, 2, store.Items()[0].Quantity)
		assert.Len(t, persister.calls, 1)
		assert.Equal(t, store.Items(), persister.last())
	})

	t.Run("Existing item is incremented", func(t *testing.T) {
		store := cart.NewStore(nil, nil)

		require.NoError(t, store.Add(models.CartItem{ID: "a", Price: 500}, 2))
		require.NoError(t, store.Add(models.CartItem{ID: "a", Price: 500}, 3))

		require.Len(t, store.Items(), 1)
		assert.Equal(t, 5, store.Items()[0].Quantity)
	})

	t.Run("Missing quantity defaults to one", func(t *testing.T) {
		store := cart.NewStore(nil, nil)

		require.NoError(t, store.Add(models.CartItem{ID: "a"}, 0))

		assert.Equal(t, 1, store.Count())
	})

	t.Run("No upper bound", func(t *testing.T) {
		store := cart.NewStore(nil, nil)

		require.NoError(t, store.Add(models.CartItem{ID: "a"}, 25))

		assert.Equal(t, 25, store.Count())
	})

	t.Run("Persist error is returned", func(t *testing.T) {
		persistErr := errors.New("cookie write failed")
		store := cart.NewStore(nil, &recordingPersister{err: persistErr})

		err := store.Add(models.CartItem{ID: "a"}, 1)

		assert.ErrorIs(t, err, persistErr)
	})
}

func TestStoreUpdateQuantity(t *testing.T) {
	seed := []models.CartItem{{ID: "a", Price: 10, Quantity: 1}, {ID: "b", Price: 20, Quantity: 2}}

	t.Run("Sets quantity", func(t *testing.T) {
		store := cart.NewStore(seed, nil)

		require.NoError(t, store.UpdateQuantity("b", 7))

		assert.Equal(t, 8, store.Count())
	})

	t.Run("Zero removes", func(t *testing.T) {
		store := cart.NewStore(seed, nil)

		require.NoError(t, store.UpdateQuantity("a", 0))

		assert.False(t, store.Contains("a"))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("Negative removes", func(t *testing.T) {
		store := cart.NewStore(seed, nil)

		require.NoError(t, store.UpdateQuantity("b", -3))

		assert.False(t, store.Contains("b"))
	})

	t.Run("Unknown id is a no-op", func(t *testing.T) {
		persister := &recordingPersister{}
		store := cart.NewStore(seed, persister)

		require.NoError(t, store.UpdateQuantity("zzz", 4))

		assert.Equal(t, 3, store.Count())
		assert.Empty(t, persister.calls)
	})
}

func TestStoreRemoveAndClear(t *testing.T) {
	persister := &recordingPersister{}
	store := cart.NewStore([]models.CartItem{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 1}}, persister)

	require.NoError(t, store.Remove("a"))
	assert.Equal(t, []string{"b"}, itemIDs(store.Items()))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Items())
	assert.Empty(t, persister.last())
	assert.Equal(t, 0.0, store.Total())
}

func TestNewStoreRepairsPersistedItems(t *testing.T) {
	store := cart.NewStore([]models.CartItem{
		{ID: "a", Quantity: 1},
		{ID: "", Quantity: 3},
		{ID: "b", Quantity: 0},
		{ID: "a", Quantity: 2},
		{ID: "c", Quantity: -1},
	}, nil)

	require.Equal(t, []string{"a"}, itemIDs(store.Items()))
	assert.Equal(t, 3, store.Count())
}

func TestStoreTotal(t *testing.T) {
	t.Run("Discount price wins over price", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(nil, nil)

		// Act
		require.NoError(t, store.Add(models.CartItem{ID: "A", Price: 500}, 2))
		require.NoError(t, store.Add(models.CartItem{ID: "B", Price: 400, DiscountPrice: price(300)}, 1))

		// Assert
		assert.Equal(t, 1300.0, store.Total())
		assert.Equal(t, 3, store.Count())
	})

	t.Run("Zero discount price falls back to price", func(t *testing.T) {
		store := cart.NewStore([]models.CartItem{{ID: "A", Price: 250, DiscountPrice: price(0), Quantity: 2}}, nil)

		assert.Equal(t, 500.0, store.Total())
	})
}

func TestStoreInvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	store := cart.NewStore(nil, nil)

	for step := 0; step < 2000; step++ {
		id := strconv.Itoa(rng.Intn(8))
		item := models.CartItem{ID: id, Price: float64(rng.Intn(1000))}
		if rng.Intn(2) == 0 {
			item.DiscountPrice = price(float64(rng.Intn(500)))
		}

		switch rng.Intn(3) {
		case 0:
			require.NoError(t, store.Add(item, rng.Intn(5)))
		case 1:
			require.NoError(t, store.UpdateQuantity(id, rng.Intn(7)-2))
		case 2:
			require.NoError(t, store.Remove(id))
		}

		seen := map[string]bool{}
		var total float64
		for _, line := range store.Items() {
			require.False(t, seen[line.ID], "duplicate id %s at step %d", line.ID, step)
			seen[line.ID] = true
			require.GreaterOrEqual(t, line.Quantity, 1, "quantity below one at step %d", step)

			unit := line.Price
			if line.DiscountPrice != nil && *line.DiscountPrice > 0 {
				unit = *line.DiscountPrice
			}
			total += unit * float64(line.Quantity)
		}
		require.InDelta(t, total, store.Total(), 1e-9)
	}
}

func itemIDs(items []models.CartItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
