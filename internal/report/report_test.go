package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/aqi-forecast/internal/aqi"
	"github.com/smartcity/aqi-forecast/internal/domain"
)

func moderateForecast() domain.Forecast {
	return domain.Forecast{
		ID:   "fc-1",
		City: "Mumbai",
		Date: "15-03-2024",
		Concentrations: domain.PredictionResult{
			domain.PM25: 24, domain.PM10: 60, domain.NO2: 130, domain.NH3: 40,
			domain.SO2: 4, domain.CO: 0.4, domain.O3: 30,
		},
		SubIndices: domain.SubIndexResult{
			domain.PM25: 40, domain.PM10: 60, domain.NO2: 150, domain.NH3: 10,
			domain.SO2: 5, domain.CO: 20, domain.O3: 30,
		},
		AQIResult:   domain.AQIResult{AQI: 150, Category: domain.CategoryModerate},
		Advisory:    aqi.Advisory(150),
		GeneratedAt: time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
	}
}

func TestText(t *testing.T) {
	out := string(Text(moderateForecast(), "Mumbai"))
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Mumbai AQI Prediction Report", lines[0])
	assert.Contains(t, out, "Date: 15-03-2024\n")
	assert.Contains(t, out, "AQI: 150 (Moderate)\n")
	assert.Contains(t, out, "Health Tip: Moderate: Consider limiting prolonged outdoor exertion.\n")
	assert.Contains(t, out, "PM2.5: 24.00\nPM10: 60.00\nNO2: 130.00\nNH3: 40.00\nSO2: 4.00\nCO: 0.40\nO3: 30.00\n")
	assert.NotContains(t, out, "Outside published breakpoints")
}

func TestText_OutOfRange(t *testing.T) {
	f := moderateForecast()
	f.OutOfRange = []domain.Pollutant{domain.PM25, domain.CO}

	out := string(Text(f, "New Delhi"))
	assert.True(t, strings.HasPrefix(out, "New Delhi AQI Prediction Report\n"))
	assert.Contains(t, out, "Outside published breakpoints: PM2.5, CO\n")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Mumbai_AQI_Report.txt", Filename("Mumbai"))
	assert.Equal(t, "New_Delhi_AQI_Report.txt", Filename("New Delhi"))
}

func TestParquet_RoundTrip(t *testing.T) {
	first := moderateForecast()
	second := moderateForecast()
	second.Date = "16-03-2024"
	second.SubIndices[domain.NO2] = 90
	second.AQIResult = domain.AQIResult{AQI: 90, Category: domain.CategorySatisfactory}

	var buf bytes.Buffer
	require.NoError(t, Parquet(&buf, []domain.Forecast{first, second}))

	rows, err := parquet.Read[Row](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, NewRow(first), rows[0])
	assert.Equal(t, "16-03-2024", rows[1].Date)
	assert.Equal(t, int32(90), rows[1].AQI)
	assert.Equal(t, "Satisfactory", rows[1].Category)
	assert.Equal(t, 0.4, rows[1].CO)
}

func TestNewRow(t *testing.T) {
	row := NewRow(moderateForecast())
	assert.Equal(t, int32(150), row.AQI)
	assert.Equal(t, int32(150), row.NO2Index)
	assert.Equal(t, 130.0, row.NO2)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC).UnixMilli(), row.GeneratedAt)
}
