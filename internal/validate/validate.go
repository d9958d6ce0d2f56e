package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// Q validates a free-text search term: trims, caps length, rejects empty.
// Letters (incl. umlauts), digits and a few separators are allowed.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		cut := 50
		// never split a multi-byte rune
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '_' || r == '.' || r == '@' || r == '\'':
		case r > 127: // umlauts etc.
		default:
			return "", false
		}
	}
	return s, true
}

// ID validates a simple resource identifier (uuid-ish, no whitespace).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	for _, r := range s {
		ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_'
		if !ok {
			return "", false
		}
	}
	return s, true
}

func Status(s string) (domain.OrderStatus, bool) {
	st := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

func Category(s string) (domain.Category, bool) {
	c := domain.Category(strings.TrimSpace(s))
	return c, c.Valid()
}

// Money parses a non-negative decimal amount.
func Money(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Qty parses a positive line quantity, clamped to a sane ceiling.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	if n > 1000 {
		n = 1000
	}
	return n, true
}

// Date accepts RFC3339 or plain YYYY-MM-DD (midnight UTC).
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Flag parses an optional boolean query parameter; nil when absent.
func Flag(s string) (*bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, false
	}
	return &b, true
}
