// Package kafka publishes served forecasts to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// Publisher produces forecast events. It implements domain.ForecastPublisher.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher creates a Kafka producer for the forecast topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w}
}

// PublishForecast serializes the forecast and writes it to the topic.
func (p *Publisher) PublishForecast(ctx context.Context, f domain.Forecast) error {
	msg, err := serializeToMessage(f)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: failed to publish forecast %s: %w", f.ID, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Forecast into a Kafka message keyed by
// forecast date, so every forecast for a day lands on the same partition.
func serializeToMessage(f domain.Forecast) (kafkago.Message, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(f.Date),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "forecast_id", Value: []byte(f.ID)},
			{Key: "category", Value: []byte(f.Category)},
			{Key: "aqi", Value: []byte(strconv.Itoa(f.AQI))},
			{Key: "generated_at", Value: []byte(f.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
