package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Id prefixes per entity.
const (
	PrefixOrder    = "ord"
	PrefixProduct  = "prod"
	PrefixCustomer = "cust"
)

// GenerateID returns a random row id with the given prefix.
// Format: prefix-8hex
// Example: ord-1a2b3c4d
func GenerateID(prefix string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b)), nil
}
