package cache

import (
	"crypto/sha256"
	"fmt"
)

// Key builds the store key for input under namespace.
// Identical inputs map to identical keys; the hash keeps keys short and uniform.
func Key(namespace, input string) string {
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s-%x", namespace, sum)
}
