package lib

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateOrderID generates an order id in the format: order-<unix millis>-<6 hex chars>.
// The millisecond prefix keeps ids roughly sortable; the suffix separates orders placed in
// the same millisecond.
func GenerateOrderID(now time.Time) string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to nanoseconds
		return fmt.Sprintf("order-%d-%06x", now.UnixMilli(), now.Nanosecond()&0xffffff)
	}
	return fmt.Sprintf("order-%d-%s", now.UnixMilli(), hex.EncodeToString(suffix))
}
