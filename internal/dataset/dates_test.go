package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayouts = []string{
	"Mon Jan 02, 2006",
	"Mon Jan 02, 2006 15:04 UTC",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"Fri Aug 04, 2023", time.Date(2023, 8, 4, 0, 0, 0, 0, time.UTC)},
		{"Fri Aug 04, 2023 01:47 UTC", time.Date(2023, 8, 4, 1, 47, 0, 0, time.UTC)},
		{"2023-08-04", time.Date(2023, 8, 4, 0, 0, 0, 0, time.UTC)},
		{"2023-08-04 01:47:00", time.Date(2023, 8, 4, 1, 47, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := ParseDate(tt.text, testLayouts)
		require.NotNil(t, got, "expected %q to parse", tt.text)
		assert.True(t, tt.want.Equal(*got), "parsed %q as %v, want %v", tt.text, got, tt.want)
	}
}

func TestParseDateFailureIsNil(t *testing.T) {
	assert.Nil(t, ParseDate("", testLayouts))
	assert.Nil(t, ParseDate("TBD", testLayouts))
	assert.Nil(t, ParseDate("04/08/2023", testLayouts))
	assert.Nil(t, ParseDate("Fri Aug 04, 2023", nil))
}

func TestDatesEqual(t *testing.T) {
	a := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	c := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, DatesEqual(&a, &b))
	assert.False(t, DatesEqual(&a, &c))
	assert.False(t, DatesEqual(&a, nil))
	assert.False(t, DatesEqual(nil, &a))
	assert.True(t, DatesEqual(nil, nil))
}
