package inventory

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func newProduct(t *testing.T, id string, price float64, category models.Category, stock int) *models.Product {
	t.Helper()
	p, err := models.NewProduct(id, "product "+id, price, category, stock)
	require.NoError(t, err)
	return p
}

func TestAdjustNeverGoesNegative(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 3))

	assert.False(t, r.Adjust("A", -4))
	assert.Equal(t, 3, r.Get("A").Stock)

	assert.True(t, r.Adjust("A", -3))
	assert.Equal(t, 0, r.Get("A").Stock)

	assert.False(t, r.Adjust("A", -1))
	assert.Equal(t, 0, r.Get("A").Stock)
}

func TestAdjustUnknownProduct(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Adjust("missing", 5))
}

func TestRegisterOverwritesByID(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 3))
	r.Register(newProduct(t, "A", 20, models.CategoryBooks, 7))

	p := r.Get("A")
	require.NotNil(t, p)
	assert.Equal(t, 20.0, p.Price)
	assert.Equal(t, 7, p.Stock)
	assert.Len(t, r.List(), 1)
}

func TestHasStock(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 3))

	assert.True(t, r.HasStock("A", 3))
	assert.False(t, r.HasStock("A", 4))
	assert.False(t, r.HasStock("missing", 1))
}

func TestReserveAllOrNothing(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 5))
	r.Register(newProduct(t, "B", 10, models.CategoryBooks, 1))

	ok := r.Reserve([]Reservation{
		{ProductID: "A", Quantity: 3},
		{ProductID: "B", Quantity: 2},
	})

	assert.False(t, ok)
	assert.Equal(t, 5, r.Get("A").Stock, "partial reservation must be rolled back")
	assert.Equal(t, 1, r.Get("B").Stock)
}

func TestReserveSuccess(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 5))
	r.Register(newProduct(t, "B", 10, models.CategoryBooks, 2))

	ok := r.Reserve([]Reservation{
		{ProductID: "A", Quantity: 3},
		{ProductID: "B", Quantity: 2},
	})

	assert.True(t, ok)
	assert.Equal(t, 2, r.Get("A").Stock)
	assert.Equal(t, 0, r.Get("B").Stock)
}

func TestReserveDuplicateIDsDrawFromSamePool(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 5))

	ok := r.Reserve([]Reservation{
		{ProductID: "A", Quantity: 3},
		{ProductID: "A", Quantity: 3},
	})
	assert.False(t, ok, "second decrement exceeds the remaining pool")
	assert.Equal(t, 5, r.Get("A").Stock)

	ok = r.Reserve([]Reservation{
		{ProductID: "A", Quantity: 3},
		{ProductID: "A", Quantity: 2},
	})
	assert.True(t, ok)
	assert.Equal(t, 0, r.Get("A").Stock)
}

func TestListOrderedByID(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "C", 10, models.CategoryBooks, 1))
	r.Register(newProduct(t, "A", 10, models.CategoryHealth, 1))
	r.Register(newProduct(t, "B", 10, models.CategoryBooks, 1))

	var ids []string
	for _, p := range r.List() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestListByCategory(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 1))
	r.Register(newProduct(t, "B", 10, models.CategoryHealth, 1))
	r.Register(newProduct(t, "C", 10, models.CategoryBooks, 1))

	books := r.ListByCategory(models.CategoryBooks)
	require.Len(t, books, 2)
	assert.Equal(t, "A", books[0].ID)
	assert.Equal(t, "C", books[1].ID)

	assert.Empty(t, r.ListByCategory(models.CategoryFootwear))
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 1))

	assert.True(t, r.Remove("A"))
	assert.Nil(t, r.Get("A"))
	assert.False(t, r.Remove("A"))
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	r := NewRegistry()
	r.Register(newProduct(t, "A", 10, models.CategoryBooks, 3))

	var wg sync.WaitGroup
	var successes atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Reserve([]Reservation{{ProductID: "A", Quantity: 1}}) {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), successes.Load(), "successful decrements must not exceed starting stock")
	assert.Equal(t, 0, r.Get("A").Stock)
}
