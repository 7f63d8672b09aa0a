package internal

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Rhymond/go-money"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Data  DataConfig        `yaml:"data"`
	Watch WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Data.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// DataConfig locates the backing file and sets the display currency.
//
// Path is resolved against the working directory; its parent directory
// must exist. Currency is an ISO 4217 code.
type DataConfig struct {
	Path     string `yaml:"path"`
	Currency string `yaml:"currency"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Currency, validation.Required, validation.By(knownCurrency)),
	)
}

// WatchConfig toggles the notice about external edits to the backing file.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

func knownCurrency(value interface{}) error {
	code, _ := value.(string)
	if money.GetCurrency(code) == nil {
		return errors.New("unknown currency code")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelWarn,
			LogFormat: LogFormatText,
		},
		Data: DataConfig{
			Path:     "cars_data.csv",
			Currency: "CHF",
		},
		Watch: WatchConfig{
			Enabled: true,
		},
	}
}
