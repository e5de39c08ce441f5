package dataset

import "time"

// ParseDate tries each layout in order and returns the first successful
// parse. It returns nil when no layout matches; a bad date string is a
// missing value, not an error, since the caller cannot repair the source.
func ParseDate(text string, layouts []string) *time.Time {
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return &parsed
		}
	}
	return nil
}

// DatesEqual reports whether two nullable dates are the same. Two absent
// dates count as equal.
func DatesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
