package domain

import (
	"sort"
	"strconv"
)

// Cart maps the string form of a product id to a positive quantity. It is
// unconfirmed purchase intent: product ids are not checked against the
// catalog until the cart is viewed. The mutation helpers take and return
// the map explicitly so they are testable without a session store.
type Cart map[string]int

// Add increments the quantity for the product by one, creating the entry
// (and the cart) when absent.
func (c Cart) Add(productID int) Cart {
	if c == nil {
		c = Cart{}
	}
	c[strconv.Itoa(productID)]++
	return c
}

// Remove drops the entry entirely. Removing an id that is not in the cart
// is a no-op, not an error.
func (c Cart) Remove(productID int) Cart {
	if c == nil {
		return Cart{}
	}
	delete(c, strconv.Itoa(productID))
	return c
}

func (c Cart) Quantity(productID int) int {
	return c[strconv.Itoa(productID)]
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// ProductIDs returns the cart's product ids sorted ascending. Keys that do
// not parse as integers are skipped.
func (c Cart) ProductIDs() []int {
	ids := make([]int, 0, len(c))
	for key := range c {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// CartLine is a cart entry resolved against the live catalog. LineTotal is
// always computed from the current price, not the price at add time.
type CartLine struct {
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartView struct {
	Items     []CartLine `json:"items"`
	TotalCost float64    `json:"total_cost"`
}
