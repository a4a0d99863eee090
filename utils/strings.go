package utils

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers s and collapses every non-alphanumeric run into a single
// dash, trimming dashes at both ends.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomPassword returns a random alphanumeric password of the given length.
func RandomPassword(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = passwordChars[rand.Intn(len(passwordChars))]
	}
	return string(b)
}

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// UniqueSuffix builds a short, mostly-unique handle suffix from the current
// time in base36 plus two random characters. Lower-case only, so it is safe
// inside an email local part.
func UniqueSuffix() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(ts) > 3 {
		ts = ts[len(ts)-3:]
	}
	b := make([]byte, 2)
	for i := range b {
		b[i] = suffixChars[rand.Intn(len(suffixChars))]
	}
	return ts + string(b)
}
