package views

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PreviewLength is how many characters of a summary the list shows.
const PreviewLength = 120

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders n in binary units with at most two decimals,
// e.g. 1536 -> "1.5 KB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatStorage is the dashboard's storage figure: KB below one megabyte,
// MB otherwise, one decimal.
func FormatStorage(n int64) string {
	if n <= 0 {
		return "0 MB"
	}
	mb := float64(n) / 1024 / 1024
	if mb < 1 {
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1f MB", mb)
}

// FormatSimilarity renders a 0..1 score as a percentage, e.g. "87.7%".
func FormatSimilarity(s float64) string {
	return fmt.Sprintf("%.1f%%", s*100)
}

// Preview shortens a summary to PreviewLength characters.
func Preview(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= PreviewLength {
		return s
	}
	return string([]rune(s)[:PreviewLength]) + "..."
}

// Initials takes the first letter of the first and last word of name.
func Initials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(firstRune(parts[0]))
	default:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	}
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}
