package id

import "github.com/segmentio/ksuid"

// ProductPrefix marks identifiers issued for catalog products.
const ProductPrefix = "prod_"

// GenerateIDWithPrefix creates a new KSUID with the given prefix.
// KSUIDs are time-ordered, collision-resistant, and URL-safe.
//
// Format: <prefix><27-char-ksuid>
// Example: prod_2ArTLVPddDx8vZk7CqEbiYp1
func GenerateIDWithPrefix(prefix string) string {
	return prefix + ksuid.New().String()
}

// NewProductID returns a fresh product identifier.
func NewProductID() string {
	return GenerateIDWithPrefix(ProductPrefix)
}
