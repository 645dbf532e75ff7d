package report

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// Row is the Parquet schema of a range export, one row per day.
type Row struct {
	Date        string  `parquet:"date"`
	City        string  `parquet:"city"`
	AQI         int32   `parquet:"aqi"`
	Category    string  `parquet:"category"`
	PM25        float64 `parquet:"pm25"`
	PM10        float64 `parquet:"pm10"`
	NO2         float64 `parquet:"no2"`
	NH3         float64 `parquet:"nh3"`
	SO2         float64 `parquet:"so2"`
	CO          float64 `parquet:"co"`
	O3          float64 `parquet:"o3"`
	PM25Index   int32   `parquet:"pm25_index"`
	PM10Index   int32   `parquet:"pm10_index"`
	NO2Index    int32   `parquet:"no2_index"`
	NH3Index    int32   `parquet:"nh3_index"`
	SO2Index    int32   `parquet:"so2_index"`
	COIndex     int32   `parquet:"co_index"`
	O3Index     int32   `parquet:"o3_index"`
	GeneratedAt int64   `parquet:"generated_at"`
}

// NewRow flattens a forecast into a Parquet row
func NewRow(f domain.Forecast) Row {
	c, s := f.Concentrations, f.SubIndices
	return Row{
		Date:        f.Date,
		City:        f.City,
		AQI:         int32(f.AQI),
		Category:    string(f.Category),
		PM25:        c[domain.PM25],
		PM10:        c[domain.PM10],
		NO2:         c[domain.NO2],
		NH3:         c[domain.NH3],
		SO2:         c[domain.SO2],
		CO:          c[domain.CO],
		O3:          c[domain.O3],
		PM25Index:   int32(s[domain.PM25]),
		PM10Index:   int32(s[domain.PM10]),
		NO2Index:    int32(s[domain.NO2]),
		NH3Index:    int32(s[domain.NH3]),
		SO2Index:    int32(s[domain.SO2]),
		COIndex:     int32(s[domain.CO]),
		O3Index:     int32(s[domain.O3]),
		GeneratedAt: f.GeneratedAt.UnixMilli(),
	}
}

// Parquet writes the forecasts as a Parquet file
func Parquet(w io.Writer, forecasts []domain.Forecast) error {
	rows := make([]Row, len(forecasts))
	for i, f := range forecasts {
		rows[i] = NewRow(f)
	}

	pw := parquet.NewGenericWriter[Row](w)
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("report: failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("report: failed to close parquet writer: %w", err)
	}
	return nil
}
