package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastField(t *testing.T) {
	assert.Equal(t, "Russia", LastField("Site 31/6, Baikonur Cosmodrome, Russia", ","))
	assert.Equal(t, "USA", LastField("LC-39A, Kennedy Space Center, Florida, USA", ","))
	assert.Equal(t, "Yellow Sea", LastField("Yellow Sea", ","))
	assert.Equal(t, "", LastField("trailing,", ","))
}

func TestNonEmptyLines(t *testing.T) {
	text := "\n  Fri Aug 04, 2023 01:47 UTC  \n\n\t\nSite 43/4, Baikonur Cosmodrome, Kazakhstan\n"
	lines := NonEmptyLines(text)
	assert.Equal(t, []string{
		"Fri Aug 04, 2023 01:47 UTC",
		"Site 43/4, Baikonur Cosmodrome, Kazakhstan",
	}, lines)

	assert.Nil(t, NonEmptyLines("  \n \n"))
}
