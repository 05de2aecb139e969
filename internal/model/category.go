// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the three business classifications that partition all events.
type Category string

// Categories, in display order.
const (
	// CategoryRecruit covers hiring events such as interview schedules.
	CategoryRecruit Category = "recruit"
	// CategoryOrder covers customer orders and reservations.
	CategoryOrder Category = "order"
	// CategoryWork covers client meetings and work requests.
	CategoryWork Category = "work"
)

// DefaultCategory is the category selected when a session starts.
const DefaultCategory = CategoryWork

// ErrUnknownCategory is returned when a string does not name a category.
var ErrUnknownCategory = errors.New("unknown category")

var categoryLabels = map[Category]string{
	CategoryRecruit: "채용",
	CategoryOrder:   "예약",
	CategoryWork:    "업무",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryRecruit, CategoryOrder, CategoryWork}
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Next returns the category after c in display order, wrapping around.
func (c Category) Next() Category {
	all := Categories()
	for i, cat := range all {
		if cat == c {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultCategory
}

func (c Category) String() string {
	return string(c)
}
