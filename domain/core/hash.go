package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// FrameFingerprint identifies the exact data an estimate was computed from,
// so an inference run can be tied back to its inputs.
type FrameFingerprint Hash

func (h FrameFingerprint) String() string { return Hash(h).String() }

// ComputeFrameFingerprint hashes unit IDs and named columns in a
// deterministic order. Column values are hashed bitwise, so fingerprints
// distinguish -0 from 0 and any NaN payloads.
func ComputeFrameFingerprint(unitIDs []string, columns map[string][]float64) FrameFingerprint {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	var data strings.Builder
	for _, id := range unitIDs {
		data.WriteString(id)
		data.WriteByte(0)
	}

	buf := make([]byte, 8)
	for _, name := range names {
		data.WriteString(name)
		data.WriteByte(0)
		for _, v := range columns[name] {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			data.Write(buf)
		}
	}

	return FrameFingerprint(NewHash([]byte(data.String())))
}
