// Package inventory holds the session's ordered, in-memory car list.
package inventory

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/starford/carscout/internal/car"
)

// Store is an ordered sequence of records. Insertion order is preserved
// and the only mutation is Add.
type Store struct {
	layout  car.Layout
	records []car.Record
}

// New returns a Store laid out as layout, seeded with records.
// Seed records are taken as-is; they came from the backing file and
// only went through type coercion.
func New(layout car.Layout, records ...car.Record) *Store {
	if len(layout) == 0 {
		layout = car.DefaultLayout()
	}
	return &Store{layout: layout, records: append([]car.Record(nil), records...)}
}

// Layout returns the column layout the store is saved with.
func (s *Store) Layout() car.Layout { return s.layout }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// All yields every record in storage order.
func (s *Store) All() iter.Seq[car.Record] {
	return func(yield func(car.Record) bool) {
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// WithinBudget yields the records whose price is at most limit, in storage order.
func (s *Store) WithinBudget(limit decimal.Decimal) iter.Seq[car.Record] {
	return func(yield func(car.Record) bool) {
		for _, r := range s.records {
			if r.Price.GreaterThan(limit) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Add validates r against the store layout and appends it.
// On error the store is left unchanged.
func (s *Store) Add(r car.Record) error {
	if err := r.Validate(s.layout); err != nil {
		return err
	}
	s.records = append(s.records, r)
	return nil
}
