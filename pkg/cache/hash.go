package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. encoding/json writes struct fields
// in declaration order and sorts map keys, so equal values hash equally.
func HashJSON(v any) (string, error) {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(v); err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashKey joins a key namespace with the hash of parts, e.g. "board:3f9a...".
func hashKey(namespace string, parts ...any) string {
	sum, err := HashJSON(parts)
	if err != nil {
		// parts are strings and plain option structs
		panic(err)
	}
	return namespace + ":" + sum
}
