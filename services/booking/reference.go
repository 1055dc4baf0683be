package booking

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	refPrefix  = "HUF"
	refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refLength  = 9
)

// NewBookingRef returns a fresh customer-facing booking reference. References
// are minted only here; the unique index on bookingRef catches the rare
// collision and the caller retries with a new one.
func NewBookingRef() (string, error) {
	buf := make([]byte, refLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate booking reference: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(refPrefix)
	for _, b := range buf {
		sb.WriteByte(refCharset[int(b)%len(refCharset)])
	}
	return sb.String(), nil
}
