package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/orientalessence/essence-api/models"
)

// ErrNotFound is returned by Storage.Load when no cart exists for a session.
var ErrNotFound = errors.New("cart not found")

// Storage persists a serialized cart under a session key. Implementations
// may fail; the Store treats storage as best effort.
type Storage interface {
	Load(sessionID string) ([]byte, error)
	Save(sessionID string, payload []byte) error
	Delete(sessionID string) error
}

// Observer is notified after every cart mutation, e.g. to refresh a
// cart-count badge.
type Observer func(sessionID string, cart models.Cart)

// Store holds per-session carts. Mutations recompute the total, persist
// through the Storage and notify observers. Persistence fails open: a
// storage error never loses the in-memory update, and unreadable stored
// data degrades to an empty cart.
type Store struct {
	storage Storage

	mu        sync.Mutex
	cache     map[string]models.Cart
	observers []Observer
}

func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		cache:   make(map[string]models.Cart),
	}
}

// Subscribe registers an observer called after every mutating operation.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Get returns the current cart for the session, or an empty cart if none
// exists or the stored payload is unreadable. It never fails.
func (s *Store) Get(sessionID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(sessionID)
}

// Add appends item to the session's cart, or increments the quantity when
// the product is already present. A zero quantity on item means 1.
func (s *Store) Add(sessionID string, item models.CartLineItem) models.Cart {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	cart := s.load(sessionID)
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}
	cart = s.commit(sessionID, cart)
	s.mu.Unlock()

	s.notify(sessionID, cart)
	return cart
}

// Remove deletes the line item for productID. Removing an absent product is
// a no-op, not an error.
func (s *Store) Remove(sessionID, productID string) models.Cart {
	s.mu.Lock()
	cart := s.load(sessionID)
	// the backing array may be shared with the cache and with carts
	// already handed to callers, so filter into a fresh slice
	kept := make([]models.CartLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart = s.commit(sessionID, cart)
	s.mu.Unlock()

	s.notify(sessionID, cart)
	return cart
}

// SetQuantity overwrites the quantity for productID. A quantity of zero or
// less removes the line item.
func (s *Store) SetQuantity(sessionID, productID string, quantity int) models.Cart {
	if quantity <= 0 {
		return s.Remove(sessionID, productID)
	}

	s.mu.Lock()
	cart := s.load(sessionID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	cart = s.commit(sessionID, cart)
	s.mu.Unlock()

	s.notify(sessionID, cart)
	return cart
}

// Clear deletes all cart state for the session.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.cache, sessionID)
	if err := s.storage.Delete(sessionID); err != nil {
		log.Println("cart: failed to delete stored cart:", err)
	}
	s.mu.Unlock()

	s.notify(sessionID, models.Cart{Items: []models.CartLineItem{}})
}

// load must be called with s.mu held.
func (s *Store) load(sessionID string) models.Cart {
	payload, err := s.storage.Load(sessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Println("cart: failed to load stored cart:", err)
			if cached, ok := s.cache[sessionID]; ok {
				return cached
			}
		}
		return models.Cart{Items: []models.CartLineItem{}}
	}

	var cart models.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		log.Println("cart: discarding unreadable cart payload:", err)
		return models.Cart{Items: []models.CartLineItem{}}
	}
	if cart.Items == nil {
		cart.Items = []models.CartLineItem{}
	}
	return cart
}

// commit recomputes the total, caches the cart and persists it best effort.
// Must be called with s.mu held.
func (s *Store) commit(sessionID string, cart models.Cart) models.Cart {
	total := 0.0
	for _, item := range cart.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	cart.Total = total

	s.cache[sessionID] = cart

	payload, err := json.Marshal(cart)
	if err != nil {
		log.Println("cart: failed to serialize cart:", err)
		return cart
	}
	if err := s.storage.Save(sessionID, payload); err != nil {
		log.Println("cart: failed to persist cart:", err)
	}
	return cart
}

func (s *Store) notify(sessionID string, cart models.Cart) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(sessionID, cart)
	}
}
