// Package cart implements the shopping cart as a multiset of menu-item
// snapshots. Every add appends one denormalized copy; grouped views and
// totals are recomputed from the line list on each call.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrIndexOutOfRange is returned by RemoveAt for positions outside the cart.
var ErrIndexOutOfRange = errors.New("cart index out of range")

// Line is a menu-item snapshot captured at add time. Price and name are
// copies, not references: a later catalog edit does not change lines
// already in the cart.
type Line struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	VegType  string
}

// GroupedLine is one distinct item with its occurrence count.
type GroupedLine struct {
	Line
	Quantity int
}

// Cart is an ordered multiset of lines. Duplicates are allowed; each add
// pushes one copy. The zero value is an empty usable cart.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromLines builds a cart over a copy of the given lines.
func FromLines(lines []Line) *Cart {
	c := &Cart{lines: make([]Line, len(lines))}
	copy(c.lines, lines)
	return c
}

// Add appends one snapshot to the cart.
func (c *Cart) Add(l Line) {
	c.lines = append(c.lines, l)
}

// RemoveAt removes the line at the given position.
func (c *Cart) RemoveAt(i int) error {
	if i < 0 || i >= len(c.lines) {
		return ErrIndexOutOfRange
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// RemoveByID removes the first line matching the given item ID and reports
// whether anything was removed.
func (c *Cart) RemoveByID(id string) bool {
	for i, l := range c.lines {
		if l.ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// QuantityOf counts the lines matching the given item ID.
func (c *Cart) QuantityOf(id string) int {
	n := 0
	for _, l := range c.lines {
		if l.ID == id {
			n++
		}
	}
	return n
}

// Grouped collapses duplicate lines into one entry per distinct ID, in
// first-occurrence order. It is recomputed from the line list each call;
// quantities always sum to Len().
func (c *Cart) Grouped() []GroupedLine {
	index := make(map[string]int)
	var grouped []GroupedLine
	for _, l := range c.lines {
		if i, ok := index[l.ID]; ok {
			grouped[i].Quantity++
			continue
		}
		index[l.ID] = len(grouped)
		grouped = append(grouped, GroupedLine{Line: l, Quantity: 1})
	}
	return grouped
}

// Total sums the price of every individual line at its captured value.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price)
	}
	return total
}

// Len returns the number of lines, duplicates included.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the line list.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart. Callers invoke it once, right after a successful
// order submission.
func (c *Cart) Clear() {
	c.lines = nil
}
