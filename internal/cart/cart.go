package cart

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// DefaultName labels a line whose source product carried no name.
const DefaultName = "Plant"

// Line is one cart entry. Lines are addressed by ID rather than position
// so that removing a line can never redirect a pending action onto its
// neighbour.
type Line struct {
	ID       string  `json:"line_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type Totals struct {
	Quantity int     `json:"total_quantity"`
	Price    float64 `json:"total_price"`
}

// Cart is an ordered list of line items. Lines merge by exact product
// name: adding a product whose name matches an existing line bumps that
// line's quantity instead of appending. A line's quantity is always >= 1;
// decrementing past 1 removes the line.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges by name or appends a new line with quantity 1. A blank name
// falls back to DefaultName; a negative or NaN price is stored as 0.
func (c *Cart) Add(name string, price float64, image string) {
	if name == "" {
		name = DefaultName
	}
	if price < 0 || math.IsNaN(price) {
		price = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Name == name {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ID:       "l_" + uuid.NewString(),
		Name:     name,
		Price:    price,
		Image:    image,
		Quantity: 1,
	})
}

// Increment bumps the quantity of the given line. Unknown ids are ignored.
func (c *Cart) Increment(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(lineID); i >= 0 {
		c.lines[i].Quantity++
	}
}

// Decrement lowers the quantity of the given line, removing it when the
// quantity would reach zero. Unknown ids are ignored.
func (c *Cart) Decrement(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(lineID)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity <= 1 {
		c.remove(i)
		return
	}
	c.lines[i].Quantity--
}

// Remove deletes the given line; remaining lines keep their order.
// Unknown ids are ignored.
func (c *Cart) Remove(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(lineID); i >= 0 {
		c.remove(i)
	}
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var t Totals
	for _, l := range c.lines {
		t.Quantity += l.Quantity
		t.Price += l.Price * float64(l.Quantity)
	}
	return t
}

func (c *Cart) index(lineID string) int {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
