// Package checksum computes SHA-256 digests of seed datasets and uploaded media.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Writer accumulates a digest of everything written to it. Pair it with
// io.TeeReader to hash a stream while it is being stored.
type Writer struct {
	h hash.Hash
}

// NewWriter returns an empty digest writer.
func NewWriter() *Writer {
	return &Writer{h: sha256.New()}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.h.Write(p)
}

// Sum returns the hex-encoded digest of the bytes written so far.
func (w *Writer) Sum() string {
	return hex.EncodeToString(w.h.Sum(nil))
}
