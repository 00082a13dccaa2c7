package report

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/shiiiru/betsmoke/internal/smoke"
)

// Pushgateway pushes run gauges to a Prometheus Pushgateway, replacing the
// previous run's series for the job.
type Pushgateway struct {
	url string
	job string
}

// NewPushgateway creates a Pushgateway sink.
func NewPushgateway(url, job string) *Pushgateway {
	return &Pushgateway{url: url, job: job}
}

func (p *Pushgateway) Name() string { return "pushgateway" }

func (p *Pushgateway) Publish(ctx context.Context, rep *smoke.Report) error {
	reg := prometheus.NewRegistry()

	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "betsmoke_checks_total",
		Help: "Checks run in the last smoke run.",
	})
	failed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "betsmoke_checks_failed",
		Help: "Checks failed in the last smoke run.",
	})
	success := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "betsmoke_last_run_success",
		Help: "1 when every check of the last smoke run passed.",
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "betsmoke_last_run_duration_seconds",
		Help: "Wall time of the last smoke run.",
	})
	passed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "betsmoke_check_passed",
		Help: "1 when the named check passed in the last smoke run.",
	}, []string{"check"})
	reg.MustRegister(total, failed, success, duration, passed)

	total.Set(float64(rep.Total()))
	failed.Set(float64(rep.FailedCount()))
	if rep.Passed() {
		success.Set(1)
	}
	duration.Set(rep.Duration().Seconds())
	for _, res := range rep.Results {
		v := 0.0
		if res.Passed {
			v = 1
		}
		passed.WithLabelValues(res.Name).Set(v)
	}

	if err := push.New(p.url, p.job).Gatherer(reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
