package smoke

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_WriteSummary(t *testing.T) {
	rep := &Report{Results: []Result{
		{Name: "Admin Login", Passed: true},
		{Name: "Game Creation", Passed: false, Detail: "POST games: expected status 200, got 500"},
		{Name: "Admin Stats", Passed: true},
	}}

	var buf bytes.Buffer
	require.NoError(t, rep.WriteSummary(&buf))

	assert.Equal(t, "\nTest Summary:\nTests run: 3\nTests passed: 2\nTests failed: 1\nSuccess rate: 66.7%\n"+
		"\nFailed Tests:\n  - Game Creation: POST games: expected status 200, got 500\n", buf.String())
	assert.False(t, rep.Passed())
}

func TestReport_EmptyRun(t *testing.T) {
	rep := &Report{}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteSummary(&buf))

	assert.Contains(t, buf.String(), "Success rate: 0.0%")
	assert.NotContains(t, buf.String(), "Failed Tests")
	assert.True(t, rep.Passed())
}

func TestReport_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rep := &Report{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, rep.Duration())
}

func TestRecorder_Record(t *testing.T) {
	var buf bytes.Buffer
	rec := &recorder{out: &buf, now: time.Now, report: &Report{}}

	rec.startSection("Bonus Creation")
	assert.True(t, rec.record("Bonus Creation", true, "ignored"))
	assert.False(t, rec.record("Bonus Purchase", false, "Missing user token or bonus ID"))

	assert.Equal(t, "\n== Bonus Creation ==\nPASS Bonus Creation\nFAIL Bonus Purchase - Missing user token or bonus ID\n", buf.String())
	require.Len(t, rec.report.Results, 2)
	assert.Empty(t, rec.report.Results[0].Detail)
	assert.Equal(t, 2, rec.report.Results[1].Seq)
	assert.Equal(t, []string{"Bonus Purchase: Missing user token or bonus ID"}, rec.report.Failures())
}

func TestLoadFixtures_DefaultsWhenNoFile(t *testing.T) {
	fx, err := LoadFixtures("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFixtures(), fx)
	assert.Len(t, fx.Match.BetTypes, 2)
	assert.Equal(t, 1.8, fx.Match.BetTypes[0].Options[0].Cote)
}

func TestLoadFixtures_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
game:
  name: Dota 2 Test
match:
  start_offset: 30m
stakes:
  simple: 2.5
`), 0o600))

	fx, err := LoadFixtures(path)
	require.NoError(t, err)

	assert.Equal(t, "Dota 2 Test", fx.Game.Name)
	assert.Equal(t, "MOBA", fx.Game.Category, "unset fields keep defaults")
	assert.Equal(t, 30*time.Minute, fx.Match.StartOffset)
	assert.Equal(t, 2.5, fx.Stakes.Simple)
	assert.Equal(t, 15.0, fx.Stakes.Combined)
	assert.Len(t, fx.Match.BetTypes, 2)
}

func TestLoadFixtures_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFixtures(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read fixtures")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("stakes: [1, 2"), 0o600))
	_, err = LoadFixtures(bad)
	assert.ErrorContains(t, err, "parse fixtures")

	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("stakes:\n  balance: 0\n"), 0o600))
	_, err = LoadFixtures(zero)
	assert.ErrorContains(t, err, "stakes must be positive")
}

func TestFixtures_MatchPayload(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	p := DefaultFixtures().matchPayload("g1", now)

	assert.Equal(t, "2026-05-01T12:00:00Z", p.StartDate)
	assert.Equal(t, "g1", p.GameID.String())
	require.Len(t, p.BetTypes, 2)
	assert.Equal(t, "First Blood", p.BetTypes[1].TypeName)
}
