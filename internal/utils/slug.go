package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugMonths = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// Slugify lowercases s, strips accents and collapses everything that is
// not a-z0-9 into single dashes.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	lastDash := true
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// DateToken formats t as e.g. "10out2025" for share slugs.
func DateToken(t time.Time) string {
	return fmt.Sprintf("%d%s%d", t.Day(), slugMonths[t.Month()-1], t.Year())
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// a timestamp suffix still keeps slugs distinct enough.
		return fmt.Sprintf("%06x", time.Now().UnixNano()&0xffffff)
	}
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}

// ShareSlug builds the public slug for a shared resource: slugified
// title, a date token from the resource's creation time and a random
// suffix so identically titled same-day resources never collide.
func ShareSlug(title string, createdAt time.Time) string {
	titleSlug := Slugify(title)
	if titleSlug == "" {
		titleSlug = "share"
	}
	return titleSlug + "-" + DateToken(createdAt) + "-" + randomSuffix(6)
}
