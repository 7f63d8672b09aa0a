// Package car defines the car record and the column layout of the backing file.
package car

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/starford/carscout/internal/apperr"
)

// Transmission values accepted on add.
const (
	TransmissionManual    = "manual"
	TransmissionAutomatic = "automatic"
)

// FirstYear is the earliest model year accepted on add.
const FirstYear = 1886

// Record is one car.
type Record struct {
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Kilometers   int             `json:"km"`
	Transmission string          `json:"transmission"`
	Price        decimal.Decimal `json:"price"`
}

// FromRow builds a Record from a data row laid out as l.
// Only type coercion is applied; see Validate for range checks.
func FromRow(l Layout, row []string) (Record, error) {
	var r Record
	if len(row) != len(l) {
		return r, fmt.Errorf("%w: expected %d fields, got %d", apperr.ErrInvalidInput, len(l), len(row))
	}
	for i, c := range l {
		if err := r.SetField(c, row[i]); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}

// Row serializes r in layout order.
func (r Record) Row(l Layout) []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = r.Field(c)
	}
	return out
}

// Field returns the file representation of column c.
func (r Record) Field(c Column) string {
	switch c {
	case ColMake:
		return r.Make
	case ColModel:
		return r.Model
	case ColYear:
		return strconv.Itoa(r.Year)
	case ColKilometers:
		return strconv.Itoa(r.Kilometers)
	case ColTransmission:
		return r.Transmission
	case ColPrice:
		return FormatDecimal(r.Price)
	}
	return ""
}

// SetField coerces raw into the field named by c.
func (r *Record) SetField(c Column, raw string) error {
	switch c {
	case ColMake:
		r.Make = raw
	case ColModel:
		r.Model = raw
	case ColTransmission:
		r.Transmission = raw
	case ColYear, ColKilometers:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s %q is not a whole number", apperr.ErrInvalidInput, c, raw)
		}
		if c == ColYear {
			r.Year = n
		} else {
			r.Kilometers = n
		}
	case ColPrice:
		d, err := ParsePrice(raw)
		if err != nil {
			return err
		}
		r.Price = d
	default:
		return fmt.Errorf("%w: unknown column %q", apperr.ErrInvalidInput, c)
	}
	return nil
}

// Validate applies the add-time checks for the columns present in l.
func (r *Record) Validate(l Layout) error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Make, validation.Required.Error("cannot be empty")),
		validation.Field(&r.Model, validation.Required.Error("cannot be empty")),
		validation.Field(&r.Year, validation.Required, validation.Min(FirstYear), validation.Max(time.Now().Year())),
		validation.Field(&r.Kilometers, validation.When(l.Has(ColKilometers), validation.Min(0))),
		validation.Field(&r.Transmission, validation.When(l.Has(ColTransmission),
			validation.Required.Error("cannot be empty"),
			validation.In(TransmissionManual, TransmissionAutomatic).Error("must be manual or automatic"),
		)),
		validation.Field(&r.Price, validation.By(nonNegative)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	return nil
}

// String is a one-line summary used in log messages.
func (r Record) String() string {
	return fmt.Sprintf("%s %s (%d)", r.Make, r.Model, r.Year)
}

// ParsePrice reads a decimal amount, keeping its written scale.
func ParsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q is not a number", apperr.ErrInvalidInput, raw)
	}
	return d, nil
}

// FormatDecimal writes d with the number of decimal places it was parsed
// with, so 18000.50 is not shortened to 18000.5.
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}
