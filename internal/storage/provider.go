// Package storage keeps uploaded media files on the local disk.
package storage

import "io"

// Provider is the interface for media file operations. Names are flat file
// names relative to the media root.
type Provider interface {
	// Create writes r to a new file called name. It fails with
	// apperr.ErrConflict if the name is taken.
	Create(name string, r io.Reader) (int64, error)
	// Path returns the absolute path of an existing file.
	Path(name string) (string, error)
	// Delete removes the named file.
	Delete(name string) error
}
