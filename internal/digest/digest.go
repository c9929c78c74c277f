// Package digest fingerprints file payloads.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/oxtoacart/bpool"
)

const bufferSize = 32 << 10

// buffers bounds hashing memory when many payloads are digested in a row
var buffers = bpool.NewBytePool(16, bufferSize)

// Reader returns the SHA-256 hex digest of everything readable from r.
// Memory use is constant regardless of input size.
func Reader(r io.Reader) (string, error) {
	buf := buffers.Get()
	defer buffers.Put(buf)

	h := sha256.New()
	_, err := io.CopyBuffer(h, r, buf)
	if err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// File returns the SHA-256 hex digest of the file at path
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Reader(f)
}
