package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/smartcity/aqi-forecast/internal/aqi"
	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/smartcity/aqi-forecast/internal/observability"
	"github.com/smartcity/aqi-forecast/pkg/utils"
)

// Options configures a ForecastService. Zero values fall back to defaults;
// Repository and Publisher are optional.
type Options struct {
	City         string
	DateLayout   string
	Policy       aqi.OutOfRangePolicy
	ModelTimeout time.Duration
	CacheSize    int
	MaxRangeDays int

	Repository ForecastRepository
	Publisher  ForecastPublisher
	Clock      clockwork.Clock
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

// ForecastService runs the AQI pipeline: date features, per-pollutant
// models, sub-indices and max aggregation
type ForecastService struct {
	city      string
	extractor aqi.Extractor
	calc      aqi.Calculator
	models    domain.ModelSet
	timeout   time.Duration
	maxRange  int
	cache     *lruCache

	repo      ForecastRepository
	publisher ForecastPublisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewForecastService creates a new forecast service
func NewForecastService(models domain.ModelSet, opts Options) *ForecastService {
	s := &ForecastService{
		city:      opts.City,
		extractor: aqi.NewExtractor(opts.DateLayout),
		calc:      aqi.Calculator{Policy: opts.Policy},
		models:    models,
		timeout:   opts.ModelTimeout,
		maxRange:  opts.MaxRangeDays,
		repo:      opts.Repository,
		publisher: opts.Publisher,
		clock:     opts.Clock,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	if s.timeout <= 0 {
		s.timeout = 5 * time.Second
	}
	if s.maxRange <= 0 {
		s.maxRange = 31
	}
	if opts.CacheSize > 0 {
		s.cache = newLRUCache(opts.CacheSize)
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetricsForTesting()
	}
	return s
}

// City returns the city the models were trained for
func (s *ForecastService) City() string {
	return s.city
}

// Today returns the current date in the service's date layout
func (s *ForecastService) Today() string {
	return s.extractor.Format(s.clock.Now())
}

// WaitBackground blocks until all background audit/publish goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *ForecastService) WaitBackground() {
	s.wgBg.Wait()
}

// Predict computes the forecast for one date. It is all-or-nothing: any
// missing model or failed prediction fails the whole request.
func (s *ForecastService) Predict(ctx context.Context, date string) (domain.Forecast, error) {
	day, err := s.extractor.Parse(date)
	if err != nil {
		s.countOutcome(err)
		return domain.Forecast{}, err
	}

	comp, err := s.computation(ctx, aqi.FromTime(day))
	if err != nil {
		s.countOutcome(err)
		return domain.Forecast{}, err
	}
	s.countOutcome(nil)
	s.metrics.LastAQI.Set(float64(comp.result.AQI))

	f := domain.Forecast{
		ID:             uuid.NewString(),
		City:           s.city,
		Date:           s.extractor.Format(day),
		Features:       comp.features,
		Concentrations: comp.concentrations,
		SubIndices:     comp.subIndices,
		AQIResult:      comp.result,
		Advisory:       aqi.Advisory(comp.result.AQI),
		OutOfRange:     comp.outOfRange,
		GeneratedAt:    s.clock.Now().UTC(),
	}

	s.record(f)
	return f, nil
}

// PredictRange computes one forecast per day from from to to, inclusive
func (s *ForecastService) PredictRange(ctx context.Context, from, to string) ([]domain.Forecast, error) {
	start, err := s.extractor.Parse(from)
	if err != nil {
		return nil, err
	}
	end, err := s.extractor.Parse(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", domain.ErrInvalidDate, to, from)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > s.maxRange {
		return nil, fmt.Errorf("%w: range of %d days exceeds the %d day limit", domain.ErrInvalidDate, days, s.maxRange)
	}

	out := make([]domain.Forecast, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		f, err := s.Predict(ctx, s.extractor.Format(d))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *ForecastService) computation(ctx context.Context, features domain.DateFeatures) (computation, error) {
	if s.cache != nil {
		if comp, ok := s.cache.get(features); ok {
			s.metrics.ForecastCache.WithLabelValues("hit").Inc()
			return comp, nil
		}
		s.metrics.ForecastCache.WithLabelValues("miss").Inc()
	}

	concentrations, err := s.predictAll(ctx, features)
	if err != nil {
		return computation{}, err
	}

	comp := computation{
		features:       features,
		concentrations: concentrations,
		subIndices:     make(domain.SubIndexResult, len(concentrations)),
	}
	for _, p := range domain.Pollutants() {
		c, ok := concentrations[p]
		if !ok {
			continue
		}
		v, err := s.calc.SubIndex(p, c)
		if err != nil {
			if !aqi.IsOutOfRange(err) {
				return computation{}, err
			}
			s.logger.Warn("concentration out of range",
				"pollutant", p,
				"concentration", c,
				"policy", s.calc.Policy.String(),
				"sub_index", v,
			)
			s.metrics.OutOfRange.WithLabelValues(string(p)).Inc()
			comp.outOfRange = append(comp.outOfRange, p)
		}
		comp.subIndices[p] = v
	}

	comp.result, err = aqi.Aggregate(comp.subIndices)
	if err != nil {
		return computation{}, err
	}

	if s.cache != nil {
		s.cache.put(features, comp)
	}
	return comp, nil
}

// predictAll invokes every pollutant model concurrently. Models are read-only,
// so no locking is needed beyond writing to distinct slice slots.
func (s *ForecastService) predictAll(ctx context.Context, features domain.DateFeatures) (domain.PredictionResult, error) {
	pollutants := domain.Pollutants()
	for _, p := range pollutants {
		if s.models[p] == nil {
			return nil, &domain.PollutantError{Pollutant: p, Kind: domain.ErrModelUnavailable}
		}
	}

	values := make([]float64, len(pollutants))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pollutants {
		i, p := i, p
		model := s.models[p]
		g.Go(func() error {
			v, err := s.invoke(gctx, p, model, features)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(domain.PredictionResult, len(pollutants))
	for i, p := range pollutants {
		result[p] = values[i]
	}
	return result, nil
}

func (s *ForecastService) invoke(ctx context.Context, p domain.Pollutant, model domain.Model, features domain.DateFeatures) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	v, err := model.Predict(ctx, features)
	s.metrics.ModelDuration.WithLabelValues(string(p)).Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, &domain.PollutantError{Pollutant: p, Kind: domain.ErrPredictionFailure, Err: err}
	}
	if !utils.IsFinite(v) || v < 0 {
		return 0, &domain.PollutantError{
			Pollutant: p,
			Kind:      domain.ErrPredictionFailure,
			Err:       fmt.Errorf("invalid concentration %g", v),
		}
	}
	return v, nil
}

// record persists and publishes the forecast asynchronously (tracked for graceful shutdown)
func (s *ForecastService) record(f domain.Forecast) {
	if s.repo == nil && s.publisher == nil {
		return
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if s.repo != nil {
			if err := s.repo.SaveForecast(bgCtx, f); err != nil {
				s.logger.Error("failed to save forecast", "id", f.ID, "error", err)
			}
		}
		if s.publisher != nil {
			if err := s.publisher.PublishForecast(bgCtx, f); err != nil {
				s.logger.Error("failed to publish forecast", "id", f.ID, "error", err)
			}
		}
	}()
}

func (s *ForecastService) countOutcome(err error) {
	s.metrics.Forecasts.WithLabelValues(Outcome(err)).Inc()
}

// Outcome names the result of a forecast request for metrics and logs
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, domain.ErrPredictionFailure):
		return "prediction_failure"
	default:
		return "error"
	}
}
