// Package ticket renders QR check-in tickets for confirmed registrations.
package ticket

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// Payload identifies a single confirmed registration. The encoded string
// is what moderators scan at the door.
type Payload struct {
	RegistrationID int64
	EventID        int64
	UserID         int64
}

// Encode returns the canonical ticket string.
func (p Payload) Encode() string {
	return fmt.Sprintf("evt:%d:reg:%d:user:%d", p.EventID, p.RegistrationID, p.UserID)
}

// Decode parses a scanned ticket string back into a Payload.
func Decode(s string) (Payload, error) {
	var p Payload
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 6 || parts[0] != "evt" || parts[2] != "reg" || parts[4] != "user" {
		return p, fmt.Errorf("ticket: malformed payload %q", s)
	}
	if _, err := fmt.Sscanf(s, "evt:%d:reg:%d:user:%d", &p.EventID, &p.RegistrationID, &p.UserID); err != nil {
		return p, fmt.Errorf("ticket: malformed payload %q", s)
	}
	return p, nil
}

// PNG renders the payload as a QR code image.
func PNG(p Payload) ([]byte, error) {
	img, err := qrcode.Encode(p.Encode(), qrcode.Medium, pngSize)
	if err != nil {
		return nil, fmt.Errorf("ticket: qr encode: %w", err)
	}
	return img, nil
}
