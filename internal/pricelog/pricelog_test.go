package pricelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldSentinel/internal/model"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	return &Log{Dir: filepath.Join(t.TempDir(), "data"), Location: time.UTC}
}

func TestAppendAndLatest(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Latest()
	assert.ErrorIs(t, err, ErrNoLog)

	day1 := time.Date(2025, 5, 5, 23, 55, 0, 0, time.UTC)
	day2 := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	obs := []model.PriceObservation{
		{Time: day1, Price: 610.1, Aux: "2640.5 USD/oz"},
		{Time: day2, Price: 612.34, Aux: "2650.1 USD/oz"},
		{Time: day2.Add(5 * time.Minute), Price: 613, Aux: "2652 USD/oz"},
	}
	for _, o := range obs {
		require.NoError(t, l.Append(o))
	}

	data, err := os.ReadFile(l.FileFor(day2))
	require.NoError(t, err)
	assert.Equal(t,
		"time,price_usd_oz,price_cny_g\n10:00:00,2650.1 USD/oz,612.34 CNY/g\n10:05:00,2652 USD/oz,613.00 CNY/g\n",
		string(data))

	h, err := l.Latest()
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, obs[1], h[0])
	assert.Equal(t, obs[2], h[1])

	path, err := l.LatestFile()
	require.NoError(t, err)
	assert.Equal(t, "gold_2025-05-06.csv", filepath.Base(path))
}

func TestLatest_IgnoresOtherFiles(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, os.MkdirAll(l.Dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(l.Dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(l.Dir, "gold_backup.csv"), []byte("x"), 0644))

	_, err := l.Latest()
	assert.ErrorIs(t, err, ErrNoLog)
}

func TestParse_LegacyAndBlankLines(t *testing.T) {
	day := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	body := "时间,金价(USD/盎司),金价(CNY/克)\n10:25:00,2650.1 USD/oz,612.5 CNY/克\n\n10:30:00,2651 USD/oz,612.7 CNY/克\n"

	h, err := parse(strings.NewReader(body), day)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, time.Date(2025, 5, 6, 10, 30, 0, 0, time.UTC), h[1].Time)
	assert.Equal(t, 612.7, h[1].Price)
	assert.Equal(t, []float64{612.5, 612.7}, h.Prices())
}

func TestParse_Malformed(t *testing.T) {
	day := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	for _, body := range []string{
		"h\n10:25:00,2650.1 USD/oz\n",
		"h\nxx,2650.1 USD/oz,612 CNY/g\n",
		"h\n10:25:00,2650.1 USD/oz,N/A CNY/g\n",
	} {
		_, err := parse(strings.NewReader(body), day)
		assert.Error(t, err, body)
	}
}
