package project

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Digest fingerprints scanned content.
type Digest [sha256.Size]byte

// HashLines fingerprints a file's lines. Lines are NUL separated, so a
// change of line terminator alone leaves the digest unchanged.
func HashLines(lines []string) Digest {
	h := sha256.New()
	for _, l := range lines {
		_, _ = io.WriteString(h, l)
		_, _ = h.Write([]byte{0})
	}
	return sum(h)
}

// Combine folds parts into base in the given order.
func Combine(base Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(base[:])
	for i := range parts {
		_, _ = h.Write(parts[i][:])
	}
	return sum(h)
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// Short is the first eight bytes in hex, enough to tell runs apart in logs.
func (d Digest) Short() string { return hex.EncodeToString(d[:8]) }

func sum(h hash.Hash) (d Digest) {
	h.Sum(d[:0])
	return d
}
