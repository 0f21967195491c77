// Package invoice computes the billable amounts of one invoice: the
// time-based cost of a project plus ad-hoc fixed-price line items. A builder
// lives only for the invoice being generated and is never persisted.
package invoice

import (
	"math"
	"slices"
	"strings"

	"github.com/ryplify/ryptrack/internal/domain"
)

// FixedItem is a flat-price invoice line not derived from tracked time.
type FixedItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Builder accumulates fixed items on top of a project's time cost.
type Builder struct {
	project    domain.Project
	hourlyRate float64
	items      []FixedItem
}

func NewBuilder(project domain.Project, hourlyRate float64) *Builder {
	return &Builder{project: project, hourlyRate: hourlyRate}
}

// AddItem appends a fixed-price line. Items with an empty description or a
// price that is not a positive finite number are rejected; the return value
// is the only indicator, nothing is raised.
func (b *Builder) AddItem(description string, price float64) bool {
	if strings.TrimSpace(description) == "" {
		return false
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return false
	}
	b.items = append(b.items, FixedItem{Description: description, Price: price})
	return true
}

// RemoveItem deletes the item at index i. Out-of-range indexes are ignored.
func (b *Builder) RemoveItem(i int) {
	if i < 0 || i >= len(b.items) {
		return
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
}

// Items returns a copy of the accepted fixed items in insertion order.
func (b *Builder) Items() []FixedItem {
	return slices.Clone(b.items)
}

// TimeCost is the project's tracked time priced at the hourly rate.
func (b *Builder) TimeCost() float64 {
	return b.project.Cost(b.hourlyRate)
}

// FixedTotal sums the prices of all accepted fixed items.
func (b *Builder) FixedTotal() float64 {
	var total float64
	for _, item := range b.items {
		total += item.Price
	}
	return total
}

// GrandTotal is the time-based cost plus the fixed items total.
func (b *Builder) GrandTotal() float64 {
	return b.TimeCost() + b.FixedTotal()
}
