package payment

import (
	"fmt"
	"math/rand"
	"time"
)

// NewTransactionID returns an identifier of the form
// "WW-<unix ms>-<rand 0..9999>". Uniqueness is best-effort only: two calls
// within the same millisecond that draw the same random suffix collide. The
// format is kept as-is because recorded transactions reference it.
func NewTransactionID() string {
	return fmt.Sprintf("WW-%d-%d", time.Now().UnixMilli(), rand.Intn(10000))
}
