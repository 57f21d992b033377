// Package cart implements the grocery shopping cart, persisted in the general
// key-value namespace.
package cart

import (
	"math"
	"sync"

	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/kv"
)

// StorageKey is the key the cart is persisted under.
const StorageKey = "@kangyang_grocery_cart"

// Cart maps product IDs to quantities. A product is present only while its
// quantity is positive.
type Cart map[int]int

// Service manages the persisted cart. Every mutation is a read-modify-write of
// the whole cart, serialized within the Service. Two Services over the same
// namespace can still overwrite each other's changes.
type Service struct {
	mx sync.Mutex
	ns *kv.Namespace
}

// New returns a cart Service storing the cart in ns.
func New(ns *kv.Namespace) *Service {
	return &Service{ns: ns}
}

// Cart returns the stored cart, or an empty one if nothing is stored or the
// stored data can't be read.
func (s *Service) Cart() Cart {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.load()
}

// AddOne adds a single unit of the product.
func (s *Service) AddOne(productID int) Cart {
	return s.Add(productID, 1)
}

// Add increases the quantity of the product by qty, adding it if it's not in
// the cart yet. Quantities are not validated; a resulting quantity of zero or
// less removes the product.
func (s *Service) Add(productID, qty int) Cart {
	return s.update(func(c Cart) {
		c.set(productID, c[productID]+qty)
	})
}

// Remove decreases the quantity of the product by one, removing it when no
// units are left. It's a no-op if the product isn't in the cart.
func (s *Service) Remove(productID int) Cart {
	return s.update(func(c Cart) {
		if qty, ok := c[productID]; ok {
			c.set(productID, qty-1)
		}
	})
}

// UpdateQuantity sets the exact quantity of the product. A quantity of zero or
// less removes it.
func (s *Service) UpdateQuantity(productID, qty int) Cart {
	return s.update(func(c Cart) {
		c.set(productID, qty)
	})
}

// Clear deletes the stored cart.
func (s *Service) Clear() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.ns.Delete(StorageKey)
}

// ItemCount returns the sum of all quantities in the cart.
func (s *Service) ItemCount() int {
	return s.Cart().Count()
}

// Count returns the sum of all quantities.
func (c Cart) Count() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// Total returns the price of the cart, rounded to cents. Products missing from
// the catalog contribute nothing.
func Total(c Cart, products []catalog.Product) float64 {
	prices := make(map[int]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	var total float64
	for id, qty := range c {
		total += prices[id] * float64(qty)
	}

	return math.Round(total*100) / 100
}

func (c Cart) set(productID, qty int) {
	if qty <= 0 {
		delete(c, productID)
		return
	}
	c[productID] = qty
}

func (s *Service) update(fn func(Cart)) Cart {
	s.mx.Lock()
	defer s.mx.Unlock()

	c := s.load()
	fn(c)
	s.ns.SetObject(StorageKey, c)

	return c.clone()
}

func (s *Service) load() Cart {
	var stored Cart
	if !s.ns.GetObject(StorageKey, &stored) {
		return Cart{}
	}

	c := make(Cart, len(stored))
	for id, qty := range stored {
		c.set(id, qty)
	}

	return c
}

func (c Cart) clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}
