package cart

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/orientalessence/essence-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStorage is an in-memory Storage for tests.
type memoryStorage struct {
	mu       sync.Mutex
	payloads map[string][]byte

	failSave bool
	failLoad bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{payloads: map[string][]byte{}}
}

func (m *memoryStorage) Load(sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad {
		return nil, errors.New("storage unavailable")
	}
	payload, ok := m.payloads[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return payload, nil
}

func (m *memoryStorage) Save(sessionID string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("storage unavailable")
	}
	m.payloads[sessionID] = payload
	return nil
}

func (m *memoryStorage) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payloads, sessionID)
	return nil
}

func oudRoyal(quantity int) models.CartLineItem {
	return models.CartLineItem{
		ProductID: "p1",
		Name:      "Oud Royal",
		UnitPrice: 250,
		Quantity:  quantity,
	}
}

func TestGetReturnsEmptyCartWhenNothingStored(t *testing.T) {
	store := NewStore(newMemoryStorage())

	cart := store.Get("session")

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestGetReturnsEmptyCartOnCorruptPayload(t *testing.T) {
	storage := newMemoryStorage()
	storage.payloads["session"] = []byte("{not json")
	store := NewStore(storage)

	cart := store.Get("session")

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddExistingProductIncrementsQuantity(t *testing.T) {
	store := NewStore(newMemoryStorage())

	store.Add("session", oudRoyal(1))
	cart := store.Add("session", oudRoyal(1))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.Total)
}

func TestSetQuantityZeroRemovesItem(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.Add("session", oudRoyal(2))

	cart := store.SetQuantity("session", "p1", 0)

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	store := NewStore(newMemoryStorage())
	before := store.Add("session", oudRoyal(2))

	after := store.Remove("session", "does-not-exist")

	assert.Equal(t, before, after)
}

func TestTotalInvariantUnderRandomMutations(t *testing.T) {
	store := NewStore(newMemoryStorage())
	rng := rand.New(rand.NewSource(42))
	products := []models.CartLineItem{
		{ProductID: "p1", Name: "Oud Royal", UnitPrice: 250},
		{ProductID: "p2", Name: "Amber Nights", UnitPrice: 180.5},
		{ProductID: "p3", Name: "Rose Attar", UnitPrice: 99.99},
	}

	var cart models.Cart
	for i := 0; i < 500; i++ {
		product := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			product.Quantity = rng.Intn(3) + 1
			cart = store.Add("session", product)
		case 1:
			cart = store.Remove("session", product.ProductID)
		case 2:
			cart = store.SetQuantity("session", product.ProductID, rng.Intn(5))
		}

		want := 0.0
		seen := map[string]bool{}
		for _, item := range cart.Items {
			assert.False(t, seen[item.ProductID], "duplicate line item for %s", item.ProductID)
			seen[item.ProductID] = true
			assert.Greater(t, item.Quantity, 0)
			want += item.UnitPrice * float64(item.Quantity)
		}
		assert.InDelta(t, want, cart.Total, 1e-9)
	}
}

func TestMutationsSurviveStorageFailure(t *testing.T) {
	storage := newMemoryStorage()
	storage.failSave = true
	store := NewStore(storage)

	cart := store.Add("session", oudRoyal(2))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 500.0, cart.Total)
	assert.Empty(t, storage.payloads, "save should have failed silently")

	// a later read falls back to the in-memory copy
	storage.failLoad = true
	cart = store.Get("session")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestRemoveDoesNotMutatePreviouslyReturnedCarts(t *testing.T) {
	storage := newMemoryStorage()
	store := NewStore(storage)
	store.Add("session", oudRoyal(1))
	store.Add("session", models.CartLineItem{ProductID: "p2", Name: "Amber Nights", UnitPrice: 180.5, Quantity: 1})

	// force the cached-cart path so the snapshot and the store share state
	storage.failLoad = true
	storage.failSave = true
	snapshot := store.Get("session")
	require.Len(t, snapshot.Items, 2)

	store.Remove("session", "p1")

	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, "p1", snapshot.Items[0].ProductID)
	assert.Equal(t, "p2", snapshot.Items[1].ProductID)
}

func TestObserversNotifiedOnEveryMutation(t *testing.T) {
	store := NewStore(newMemoryStorage())

	var calls int
	var last models.Cart
	store.Subscribe(func(sessionID string, cart models.Cart) {
		calls++
		last = cart
	})

	store.Add("session", oudRoyal(1))
	store.SetQuantity("session", "p1", 3)
	store.Remove("session", "p1")
	store.Clear("session")

	assert.Equal(t, 4, calls)
	assert.Empty(t, last.Items)
}

func TestClearDeletesStoredState(t *testing.T) {
	storage := newMemoryStorage()
	store := NewStore(storage)
	store.Add("session", oudRoyal(1))
	require.NotEmpty(t, storage.payloads)

	store.Clear("session")

	assert.Empty(t, storage.payloads)
	assert.Empty(t, store.Get("session").Items)
}
