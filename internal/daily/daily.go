// Package daily derives the "letter of the day" that daily word chain
// matches must start with. The letter is a pure function of the UTC date and
// a server-side salt, so every player gets the same one without storage.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Letters are the starting letters a daily match can draw. Letters with
// very few dictionary entries (k, ñ, w, x, y) are left out.
var Letters = []rune("abcdefghijlmnopqrstuvz")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Letter returns the starting letter for date.
func Letter(date time.Time, salt string) string {
	return string(Letters[Index(date, salt, len(Letters))])
}
