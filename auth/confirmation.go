// Package auth implements the signup confirmation-code scheme.
//
// Codes are not persisted. A code is an HMAC over a snapshot of the
// user's authentication-relevant state plus an issue timestamp, so
// validity is recomputed from the current record: any change to that
// state (email, role, password, confirmation) invalidates every
// outstanding code for the user.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reviewdb-api/models"
)

const signatureLen = 20

type CodeGenerator struct {
	secret []byte
	ttl    time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewCodeGenerator(secret []byte, ttl time.Duration) *CodeGenerator {
	return &CodeGenerator{secret: secret, ttl: ttl, now: time.Now}
}

// MakeCode issues a confirmation code bound to the user's current state.
func (g *CodeGenerator) MakeCode(user *models.User) string {
	ts := g.now().Unix()
	return strconv.FormatInt(ts, 36) + "-" + g.sign(user, ts)
}

// CheckCode reports whether code is valid for the user's current
// state. Pure with respect to the snapshot: repeated checks against
// unchanged state give the same answer.
func (g *CodeGenerator) CheckCode(user *models.User, code string) bool {
	tsPart, sig, ok := strings.Cut(code, "-")
	if !ok || len(sig) != signatureLen {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	issued := time.Unix(ts, 0)
	now := g.now()
	if issued.After(now) || now.Sub(issued) > g.ttl {
		return false
	}

	return hmac.Equal([]byte(sig), []byte(g.sign(user, ts)))
}

func (g *CodeGenerator) sign(user *models.User, ts int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%d\x00%s\x00%s\x00%s\x00%s\x00%s\x00%d",
		user.ID,
		user.Username,
		user.Email,
		user.Role,
		user.Password,
		formatConfirmedAt(user.ConfirmedAt),
		ts,
	)
	return hex.EncodeToString(mac.Sum(nil))[:signatureLen]
}

func formatConfirmedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}
