package smoke

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Result is one recorded check outcome.
type Result struct {
	Seq        int       `json:"seq"`
	Section    string    `json:"section"`
	Name       string    `json:"name"`
	Passed     bool      `json:"passed"`
	Detail     string    `json:"detail,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Report is the outcome of one run.
type Report struct {
	RunID      uuid.UUID `json:"run_id"`
	BaseURL    string    `json:"base_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
}

// Total is the number of checks run.
func (r *Report) Total() int { return len(r.Results) }

// PassedCount is the number of checks that passed.
func (r *Report) PassedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// FailedCount is the number of checks that failed.
func (r *Report) FailedCount() int { return r.Total() - r.PassedCount() }

// Passed reports whether every check that ran passed.
func (r *Report) Passed() bool { return r.FailedCount() == 0 }

// SuccessRate is the pass percentage, 0 when nothing ran.
func (r *Report) SuccessRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.PassedCount()) / float64(r.Total()) * 100
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Failures lists "<name>: <detail>" for every failed check, in order.
func (r *Report) Failures() []string {
	var out []string
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res.Name+": "+res.Detail)
		}
	}
	return out
}

// WriteSummary prints the counts, success rate and failure list.
func (r *Report) WriteSummary(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\nTest Summary:\nTests run: %d\nTests passed: %d\nTests failed: %d\nSuccess rate: %.1f%%\n",
		r.Total(), r.PassedCount(), r.FailedCount(), r.SuccessRate()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nFailed Tests:"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	for _, f := range failures {
		if _, err := fmt.Fprintf(w, "  - %s\n", f); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

// recorder appends results to a report and echoes them to the output.
type recorder struct {
	out     io.Writer
	now     func() time.Time
	report  *Report
	section string
}

func (rec *recorder) startSection(title string) {
	rec.section = title
	fmt.Fprintf(rec.out, "\n== %s ==\n", title)
}

// record stores one outcome and returns ok so checks can end with it.
func (rec *recorder) record(name string, ok bool, detail string) bool {
	res := Result{
		Seq:        len(rec.report.Results) + 1,
		Section:    rec.section,
		Name:       name,
		Passed:     ok,
		RecordedAt: rec.now(),
	}
	if ok {
		fmt.Fprintf(rec.out, "PASS %s\n", name)
	} else {
		res.Detail = detail
		fmt.Fprintf(rec.out, "FAIL %s - %s\n", name, detail)
	}
	rec.report.Results = append(rec.report.Results, res)
	return ok
}
