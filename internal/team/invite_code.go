package team

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// inviteCodeBytes yields a 32-character hex code, long enough that collisions
// are a retry case rather than a design concern.
const inviteCodeBytes = 16

// GenerateInviteCode returns a new random team invite code.
func GenerateInviteCode() (string, error) {
	b := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating invite code: %w", err)
	}
	return hex.EncodeToString(b), nil
}
