// Package storage defines the data-directory file-system abstraction.
package storage

// Provider is the interface for data file operations.
type Provider interface {
	// Read returns the raw bytes of the file at name (relative to the data directory).
	Read(name string) ([]byte, error)
	// Write atomically replaces the file at name with content.
	Write(name string, content []byte) error
	// Abs returns the absolute path of name.
	Abs(name string) (string, error)
}
