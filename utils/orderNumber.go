package utils

import (
	"fmt"
	"strings"
	"time"
)

// NewOrderNumber generates a human-readable order number from the current
// timestamp plus a random suffix. The repository does not enforce
// uniqueness; the suffix keeps collisions between submissions in the same
// millisecond negligible.
func NewOrderNumber() string {
	suffix, err := GenerateCode(4)
	if err != nil {
		suffix = fmt.Sprintf("%08d", time.Now().Nanosecond())
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), strings.ToUpper(suffix))
}
