// Package csvfile loads and saves an inventory as a comma-separated file
// with a header row.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/starford/carscout/internal/apperr"
	"github.com/starford/carscout/internal/car"
	"github.com/starford/carscout/internal/checksum"
	"github.com/starford/carscout/internal/inventory"
	"github.com/starford/carscout/internal/storage"
)

// File is the backing file of a session.
type File struct {
	store  storage.Provider
	name   string
	logger *slog.Logger

	// loadedSum is the checksum of the bytes last read or written,
	// empty when the file did not exist.
	loadedSum string
}

// New returns a File for name inside store.
func New(store storage.Provider, name string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{store: store, name: name, logger: logger}
}

// Name returns the file name relative to the data directory.
func (f *File) Name() string { return f.name }

// Path returns the absolute path of the backing file.
func (f *File) Path() (string, error) {
	p, err := f.store.Abs(f.name)
	if err != nil {
		return "", fmt.Errorf("csvfile: %w", err)
	}
	return p, nil
}

// Load reads the backing file into a new Store. A missing file yields an
// empty Store with the default layout.
func (f *File) Load() (*inventory.Store, error) {
	data, err := f.store.Read(f.name)
	if errors.Is(err, fs.ErrNotExist) {
		f.loadedSum = ""
		f.logger.Info("csvfile: no data file, starting empty", slog.String("file", f.name))
		return inventory.New(car.DefaultLayout()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvfile: load %s: %w", f.name, err)
	}
	f.loadedSum = checksum.Sum(data)

	s, err := Decode(bytes.NewReader(data), f.logger.With(slog.String("file", f.name)))
	if err != nil {
		return nil, fmt.Errorf("csvfile: load %s: %w", f.name, err)
	}
	f.logger.Info("csvfile: loaded", slog.String("file", f.name), slog.Int("records", s.Len()))
	return s, nil
}

// Save replaces the backing file with the header and every record of s.
// Edits made to the file by other programs since Load are overwritten.
func (f *File) Save(s *inventory.Store) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return fmt.Errorf("csvfile: save %s: %w", f.name, err)
	}

	current, err := f.store.Read(f.name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		if checksum.Sum(current) != f.loadedSum {
			f.logger.Warn("csvfile: data file changed since load, overwriting", slog.String("file", f.name))
		}
	}

	if err := f.store.Write(f.name, buf.Bytes()); err != nil {
		return fmt.Errorf("csvfile: save %s: %w", f.name, err)
	}
	f.loadedSum = checksum.Sum(buf.Bytes())
	f.logger.Info("csvfile: saved", slog.String("file", f.name), slog.Int("records", s.Len()))
	return nil
}

// Decode parses CSV data into a Store. The first row is the header; a first
// row that is not a header but is a valid record in the default layout is
// read as data in that layout. Malformed data rows are logged and skipped.
func Decode(r io.Reader, logger *slog.Logger) (*inventory.Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var layout car.Layout
	var records []car.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			logger.Warn("csvfile: skipping malformed row",
				slog.Int("line", perr.StartLine),
				slog.String("error", perr.Err.Error()))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if layout == nil {
			if car.IsHeader(row) {
				layout, err = car.ParseLayout(row)
				if err != nil {
					return nil, err
				}
				continue
			}
			def := car.DefaultLayout()
			if len(row) != len(def) {
				return nil, fmt.Errorf("%w: line %d is neither a header nor a %d-field record",
					apperr.ErrInvalidHeader, line, len(def))
			}
			if _, err := car.FromRow(def, row); err != nil {
				return nil, fmt.Errorf("%w: line %d is neither a header nor a record: %v",
					apperr.ErrInvalidHeader, line, err)
			}
			logger.Info("csvfile: no header row, assuming default layout")
			layout = def
		}

		rec, err := car.FromRow(layout, row)
		if err != nil {
			logger.Warn("csvfile: skipping malformed row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		records = append(records, rec)
	}
	return inventory.New(layout, records...), nil
}

// Encode writes the header of s followed by one row per record in storage order.
// Output is canonical: lower-case header names, LF line endings and prices
// in plain decimal notation.
func Encode(w io.Writer, s *inventory.Store) error {
	layout := s.Layout()
	cw := csv.NewWriter(w)
	if err := cw.Write(layout.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r := range s.All() {
		if err := cw.Write(r.Row(layout)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
