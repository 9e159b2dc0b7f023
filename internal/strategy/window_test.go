package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 1, 2, h, m, 30, 0, time.UTC)
}

func TestWindow_WrapsMidnight(t *testing.T) {
	w, err := ParseWindow("22:00-06:00")
	require.NoError(t, err)

	assert.True(t, w.Contains(at(23, 30)))
	assert.False(t, w.Contains(at(12, 0)))
	assert.True(t, w.Contains(at(6, 0)))
	assert.True(t, w.Contains(at(22, 0)))
	assert.True(t, w.Contains(at(0, 0)))
	assert.False(t, w.Contains(at(6, 1)))
	assert.False(t, w.Contains(at(21, 59)))
	assert.Equal(t, "22:00-06:00", w.String())
}

func TestWindow_SameDay(t *testing.T) {
	w, err := ParseWindow("02:00-09:10")
	require.NoError(t, err)

	assert.True(t, w.Contains(at(2, 0)))
	assert.True(t, w.Contains(at(9, 10)))
	assert.False(t, w.Contains(at(9, 11)))
	assert.False(t, w.Contains(at(1, 59)))
}

func TestWindow_Empty(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.False(t, w.Contains(at(3, 0)))
	assert.Equal(t, "", w.String())
}

func TestParseWindow_Malformed(t *testing.T) {
	for _, s := range []string{"22:00", "22:00-", "25:00-06:00", "ab:cd-01:00", "22-06", "22:00~06:00"} {
		_, err := ParseWindow(s)
		assert.ErrorIs(t, err, ErrInvalidWindow, s)
	}
}
