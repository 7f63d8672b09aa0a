package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/carscout/internal/apperr"
	"github.com/starford/carscout/internal/testutil"
)

func testConfig(t *testing.T, dir string, watch bool) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Data.Path = filepath.Join(dir, "cars_data.csv")
	cfg.Data.Currency = "USD"
	cfg.Watch.Enabled = watch
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func runApp(t *testing.T, cfg *Config, input string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	err := Run(context.Background(),
		WithConfig(cfg),
		WithInput(strings.NewReader(input)),
		WithOutput(&out),
		WithLogOutput(&logs),
	)
	return out.String(), logs.String(), err
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRun_NewFileAddAndSave(t *testing.T) {
	for _, watch := range []bool{false, true} {
		name := "watch off"
		if watch {
			name = "watch on"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := testConfig(t, dir, watch)

			out, _, err := runApp(t, cfg, "3\nToyota\nCorolla\n2020\n45000\nautomatic\n18000\n4\n")
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			for _, want := range []string{"Welcome to CAR SCOUT!", "Loaded 0 cars from cars_data.csv.", "Car added!", "Saved. Goodbye!"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			want := "make,model,year,km,transmission,price\nToyota,Corolla,2020,45000,automatic,18000\n"
			if got := testutil.ReadFile(t, dir, "cars_data.csv"); got != want {
				t.Errorf("file = %q, want %q", got, want)
			}
		})
	}
}

func TestRun_ExistingFileScenario(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "cars_data.csv", "make,model,year,price\nToyota,Corolla,2020,18000\n")
	cfg := testConfig(t, dir, false)

	out, _, err := runApp(t, cfg, "2\n15000\n3\nHonda\nCivic\n2021\n17000\n2\n17000\n4\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Loaded 1 cars") || !strings.Contains(out, "No cars found for your expected price.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	want := "make,model,year,price\nToyota,Corolla,2020,18000\nHonda,Civic,2021,17000\n"
	if got := testutil.ReadFile(t, dir, "cars_data.csv"); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestRun_InputClosedDiscardsChanges(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, true)

	_, logs, err := runApp(t, cfg, "3\nToyota\nCorolla\n2020\n45000\nmanual\n18000\n")
	if !errors.Is(err, apperr.ErrInputClosed) {
		t.Fatalf("err = %v, want ErrInputClosed", err)
	}
	// The caller logs the returned error.
	if strings.Contains(logs, "level=ERROR") {
		t.Errorf("session error logged inside Run:\n%s", logs)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "cars_data.csv")); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("data file written without Save & Exit: %v", statErr)
	}
}

func TestRun_BadHeaderAbortsStartup(t *testing.T) {
	dir := t.TempDir()
	original := "brand,model\nToyota,Corolla\n"
	testutil.WriteFile(t, dir, "cars_data.csv", original)
	cfg := testConfig(t, dir, false)

	_, _, err := runApp(t, cfg, "4\n")
	if !errors.Is(err, apperr.ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
	if got := testutil.ReadFile(t, dir, "cars_data.csv"); got != original {
		t.Errorf("file modified: %q", got)
	}
}

func TestRun_MissingDataDirectory(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Data.Path = filepath.Join(t.TempDir(), "missing", "cars.csv")
	if _, _, err := runApp(t, cfg, "4\n"); err == nil {
		t.Fatal("expected error for missing data directory")
	}
}

func TestRun_SkippedRowsLogged(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "cars_data.csv", "make,model,year,price\nToyota,Corolla,2020,18000\nFiat,Panda,old,6000\n")
	cfg := testConfig(t, dir, false)

	out, logs, err := runApp(t, cfg, "4\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Loaded 1 cars") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(logs, "skipping malformed row") {
		t.Errorf("expected warning in logs:\n%s", logs)
	}
	// The malformed row is not carried over.
	if got := testutil.ReadFile(t, dir, "cars_data.csv"); strings.Contains(got, "Panda") {
		t.Errorf("malformed row survived save: %q", got)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(ApplicationConfig{LogFormat: LogFormatJSON}, &buf)
	logger.Info("hello")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON log line, got %q", buf.String())
	}
}
