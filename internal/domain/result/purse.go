package result

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var purseNumberRegex = regexp.MustCompile(`^\d+(\.\d+)?`)

// ParsePurse reads a currency string like "$1,234.56". Blank, zero and
// negative purses yield nil. Text without a leading number or with a
// dangling or repeated decimal point is rejected.
func ParsePurse(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	negative := false
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	number := purseNumberRegex.FindString(s)
	if number == "" {
		return nil, fmt.Errorf("invalid purse %q", raw)
	}
	if strings.HasPrefix(s[len(number):], ".") {
		return nil, fmt.Errorf("malformed purse %q", raw)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return nil, fmt.Errorf("parse purse %q: %w", raw, err)
	}
	if negative || value <= 0 {
		return nil, nil
	}
	return &value, nil
}

// FormatAmount renders a money value with two decimals.
func FormatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// parseInt reads leaderboard integers such as "3", "T3" or "" (absent).
func parseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "T"), "t")
	if s == "" {
		return 0, false
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return value, true
}
