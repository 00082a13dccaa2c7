package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shiiiru/betsmoke/internal/smoke"
)

// Publisher is satisfied by infra.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// RunSummary is the message published for each run.
type RunSummary struct {
	RunID       string         `json:"run_id"`
	BaseURL     string         `json:"base_url"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	DurationMS  int64          `json:"duration_ms"`
	Passed      bool           `json:"passed"`
	Total       int            `json:"total"`
	Failed      int            `json:"failed"`
	SuccessRate float64        `json:"success_rate"`
	Failures    []string       `json:"failures,omitempty"`
	Results     []smoke.Result `json:"results"`
}

// Summarize builds the published form of a run.
func Summarize(rep *smoke.Report) RunSummary {
	return RunSummary{
		RunID:       rep.RunID.String(),
		BaseURL:     rep.BaseURL,
		StartedAt:   rep.StartedAt,
		FinishedAt:  rep.FinishedAt,
		DurationMS:  rep.Duration().Milliseconds(),
		Passed:      rep.Passed(),
		Total:       rep.Total(),
		Failed:      rep.FailedCount(),
		SuccessRate: rep.SuccessRate(),
		Failures:    rep.Failures(),
		Results:     rep.Results,
	}
}

// Kafka publishes one summary message per run, keyed by run id.
type Kafka struct {
	producer Publisher
	topic    string
}

// NewKafka creates a Kafka sink on topic.
func NewKafka(producer Publisher, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

func (k *Kafka) Name() string { return "kafka" }

func (k *Kafka) Publish(ctx context.Context, rep *smoke.Report) error {
	value, err := json.Marshal(Summarize(rep))
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	if err := k.producer.Publish(ctx, k.topic, []byte(rep.RunID.String()), value); err != nil {
		return fmt.Errorf("publish to %s: %w", k.topic, err)
	}
	return nil
}
