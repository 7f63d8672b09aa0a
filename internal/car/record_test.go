package car

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/starford/carscout/internal/apperr"
)

var shortLayout = Layout{ColMake, ColModel, ColYear, ColPrice}

func TestFromRow_Valid(t *testing.T) {
	r, err := FromRow(DefaultLayout(), []string{"Toyota", "Corolla", "2020", "45000", "automatic", "18000.50"})
	if err != nil {
		t.Fatalf("FromRow: %v", err)
	}
	want := Record{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2020,
		Kilometers:   45000,
		Transmission: "automatic",
		Price:        decimal.RequireFromString("18000.5"),
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRow_WrongFieldCount(t *testing.T) {
	_, err := FromRow(shortLayout, []string{"Toyota", "Corolla", "2020"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestFromRow_NonNumeric(t *testing.T) {
	cases := map[string][]string{
		"year":  {"Toyota", "Corolla", "twenty", "18000"},
		"price": {"Toyota", "Corolla", "2020", "cheap"},
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromRow(shortLayout, row)
			if !errors.Is(err, apperr.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), name) {
				t.Errorf("error %q should name the %s column", err, name)
			}
		})
	}
}

func TestRow_KeepsPriceScale(t *testing.T) {
	for _, raw := range []string{"18000", "18000.50", "0.05", "17999.99"} {
		r, err := FromRow(shortLayout, []string{"Honda", "Civic", "2021", raw})
		if err != nil {
			t.Fatalf("FromRow(%q): %v", raw, err)
		}
		got := r.Row(shortLayout)
		if got[3] != raw {
			t.Errorf("price %q serialized as %q", raw, got[3])
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() Record {
		return Record{
			Make:         "Honda",
			Model:        "Civic",
			Year:         2021,
			Kilometers:   12000,
			Transmission: TransmissionManual,
			Price:        decimal.NewFromInt(17000),
		}
	}

	cases := []struct {
		name    string
		layout  Layout
		mutate  func(*Record)
		wantErr bool
	}{
		{"valid", DefaultLayout(), func(*Record) {}, false},
		{"blank make", DefaultLayout(), func(r *Record) { r.Make = "" }, true},
		{"blank model", DefaultLayout(), func(r *Record) { r.Model = "" }, true},
		{"year too old", DefaultLayout(), func(r *Record) { r.Year = 1800 }, true},
		{"year in future", DefaultLayout(), func(r *Record) { r.Year = 9999 }, true},
		{"zero year", DefaultLayout(), func(r *Record) { r.Year = 0 }, true},
		{"negative km", DefaultLayout(), func(r *Record) { r.Kilometers = -1 }, true},
		{"bad transmission", DefaultLayout(), func(r *Record) { r.Transmission = "cvt" }, true},
		{"negative price", DefaultLayout(), func(r *Record) { r.Price = decimal.NewFromInt(-1) }, true},
		{"zero price", DefaultLayout(), func(r *Record) { r.Price = decimal.Zero }, false},
		{"short layout ignores transmission", shortLayout, func(r *Record) { r.Transmission = "" }, false},
		{"short layout ignores km", shortLayout, func(r *Record) { r.Kilometers = -1 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.mutate(&r)
			err := r.Validate(tc.layout)
			if tc.wantErr {
				if !errors.Is(err, apperr.ErrInvalidInput) {
					t.Errorf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := map[string]string{
		"18000":   "18000",
		"18000.0": "18000.0",
		"-0.50":   "-0.50",
		"1.8e4":   "18000",
	}
	for in, want := range cases {
		if got := FormatDecimal(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatDecimal(%s) = %q, want %q", in, got, want)
		}
	}
}
