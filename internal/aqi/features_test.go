package aqi

import (
	"testing"
	"time"

	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	e := NewExtractor("")

	t.Run("leap day", func(t *testing.T) {
		f, err := e.Extract("29-02-2024")
		require.NoError(t, err)
		assert.Equal(t, domain.DateFeatures{Year: 2024, Month: 2, Day: 29, DayOfWeek: 3}, f)
	})

	t.Run("friday", func(t *testing.T) {
		f, err := e.Extract("15-03-2024")
		require.NoError(t, err)
		assert.Equal(t, domain.DateFeatures{Year: 2024, Month: 3, Day: 15, DayOfWeek: 4}, f)
	})

	t.Run("monday is zero and sunday is six", func(t *testing.T) {
		mon, err := e.Extract("11-03-2024")
		require.NoError(t, err)
		assert.Equal(t, 0, mon.DayOfWeek)

		sun, err := e.Extract("17-03-2024")
		require.NoError(t, err)
		assert.Equal(t, 6, sun.DayOfWeek)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		_, err := e.Extract(" 01-01-2025 ")
		require.NoError(t, err)
	})
}

func TestExtract_Invalid(t *testing.T) {
	e := NewExtractor(DefaultLayout)

	for _, in := range []string{
		"29-02-2023",
		"31-04-2024",
		"00-01-2024",
		"15-13-2024",
		"2024-03-15",
		"15/03/2024",
		"",
		"tomorrow",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := e.Extract(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDate)
		})
	}
}

func TestExtract_CustomLayout(t *testing.T) {
	e := NewExtractor("2006-01-02")

	f, err := e.Extract("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, domain.DateFeatures{Year: 2024, Month: 3, Day: 15, DayOfWeek: 4}, f)

	_, err = e.Extract("15-03-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestExtractor_Format(t *testing.T) {
	e := Extractor{}
	assert.Equal(t, "05-11-2024", e.Format(time.Date(2024, 11, 5, 23, 59, 0, 0, time.UTC)))
}

func TestFromTime_IgnoresClock(t *testing.T) {
	late := time.Date(2024, 3, 17, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, domain.DateFeatures{Year: 2024, Month: 3, Day: 17, DayOfWeek: 6}, FromTime(late))
}
