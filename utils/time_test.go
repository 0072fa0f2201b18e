package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnlyKeepsLocalCalendarDay(t *testing.T) {
	bishkek := time.FixedZone("KGT", 6*60*60)
	late := time.Date(2026, 10, 15, 23, 30, 0, 0, bishkek)

	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), DateOnly(late))
	assert.Equal(t, "2026-10-15", SQLDate(late))
	// в UTC это уже 15-е 17:30, а не 16-е
	assert.Equal(t, "2026-10-15", SQLDate(DateOnly(late.UTC())))
	assert.Equal(t, "2026-10-16", SQLDate(DateOnly(late).AddDate(0, 0, 1)))
}
