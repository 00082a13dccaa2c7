package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiiiru/betsmoke/internal/apiclient"
	"github.com/shiiiru/betsmoke/internal/app"
	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/service"
)

const (
	testAdminEmail    = "admin@shiiirubet.com"
	testAdminPassword = "ShiiiruAdmin2025"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// referenceBackend serves the in-memory betting API.
func referenceBackend(t *testing.T) *httptest.Server {
	t.Helper()
	logger := discardLogger()
	jwtMgr := auth.NewJWTManager("smoke-test-secret", time.Hour, time.Hour)
	book := service.NewBook(jwtMgr, logger, service.Options{HashCost: bcrypt.MinCost})
	require.NoError(t, book.SeedAdmin(testAdminEmail, testAdminPassword))

	srv := httptest.NewServer(app.NewRouter(app.RouterDeps{Book: book, JWTMgr: jwtMgr, Logger: logger}))
	t.Cleanup(srv.Close)
	return srv
}

func testSettings(baseURL string) Settings {
	return Settings{
		BaseURL:         baseURL,
		AdminEmail:      testAdminEmail,
		AdminPassword:   testAdminPassword,
		UserPassword:    "TestPassword123",
		StartingBalance: decimal.NewFromInt(150),
	}
}

func newTestRunner(baseURL string, settings Settings, out io.Writer) *Runner {
	client := apiclient.New(baseURL+"/api", 5*time.Second, discardLogger())
	return NewRunner(client, settings, DefaultFixtures(), out, discardLogger())
}

func names(rep *Report) []string {
	out := make([]string, 0, len(rep.Results))
	for _, res := range rep.Results {
		out = append(out, res.Name)
	}
	return out
}

func TestRun_AllChecksPassAgainstReferenceBackend(t *testing.T) {
	srv := referenceBackend(t)
	var out bytes.Buffer

	rep := newTestRunner(srv.URL, testSettings(srv.URL), &out).Run(context.Background())

	assert.True(t, rep.Passed(), "failures: %v", rep.Failures())
	assert.Equal(t, []string{
		"Admin Login",
		"User Registration with 150 ECU",
		"User Login",
		"Game Creation",
		"Match Creation with Bet Types",
		"Bonus Creation",
		"Admin Stats",
		"Simple Bet Placement",
		"Combined Bet Placement (2+ bets)",
		"Bonus Purchase",
		"User Dashboard - Available Matches",
		"User Dashboard - My Bets",
		"User Dashboard - My Combined Bets",
		"User Dashboard - Available Bonuses",
		"User Dashboard - Transaction History",
		"Balance Update After Bet",
		"Bet Validation (Won)",
	}, names(rep))

	assert.Contains(t, out.String(), "Testing against: "+srv.URL)
	assert.Contains(t, out.String(), "== Admin Authentication ==")
	assert.Contains(t, out.String(), "PASS Bet Validation (Won)")
	assert.NotContains(t, out.String(), "FAIL")

	for i, res := range rep.Results {
		assert.Equal(t, i+1, res.Seq)
		assert.NotEmpty(t, res.Section)
	}
	assert.False(t, rep.FinishedAt.Before(rep.StartedAt))
}

func TestRun_ContractChecksPassAgainstReferenceBackend(t *testing.T) {
	srv := referenceBackend(t)
	settings := testSettings(srv.URL)
	settings.ContractChecks = true

	rep := newTestRunner(srv.URL, settings, io.Discard).Run(context.Background())

	require.Equal(t, 20, rep.Total())
	assert.True(t, rep.Passed(), "failures: %v", rep.Failures())
	assert.Equal(t, []string{
		"Contract - Unauthenticated Bet Rejected",
		"Contract - Single Selection Combined Rejected",
		"Contract - Non-admin Game Creation Rejected",
	}, names(rep)[17:])
}

func TestRun_AdminLoginFailureSkipsAdminChecks(t *testing.T) {
	srv := referenceBackend(t)
	settings := testSettings(srv.URL)
	settings.AdminPassword = "wrong-password"
	var out bytes.Buffer

	rep := newTestRunner(srv.URL, settings, &out).Run(context.Background())

	assert.False(t, rep.Passed())
	assert.Equal(t, 12, rep.Total())
	assert.Equal(t, 7, rep.PassedCount())
	assert.Contains(t, out.String(), "FAIL Admin Login - POST auth/login: expected status 200, got 401")
	assert.Contains(t, out.String(), "FAIL Simple Bet Placement - Missing user token or match ID")
	assert.Contains(t, out.String(), "FAIL Bonus Purchase - Missing user token or bonus ID")
	assert.Contains(t, out.String(), "FAIL Balance Updates - Could not test balance updates")
	assert.NotContains(t, out.String(), "Game Creation")
	assert.NotContains(t, out.String(), "Bet Validation")
}

func TestRun_WrongStartingBalanceFailsRegistration(t *testing.T) {
	srv := referenceBackend(t)
	settings := testSettings(srv.URL)
	settings.StartingBalance = decimal.NewFromInt(100)

	rep := newTestRunner(srv.URL, settings, io.Discard).Run(context.Background())

	require.GreaterOrEqual(t, rep.Total(), 2)
	reg := rep.Results[1]
	assert.Equal(t, "User Registration", reg.Name)
	assert.False(t, reg.Passed)
	assert.Equal(t, "expected starting balance 100, got 150", reg.Detail)
	for _, res := range rep.Results {
		assert.NotEqual(t, "Simple Bet Placement", res.Name, "user checks must be gated on registration")
	}
}

func TestRun_UnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	rep := newTestRunner(url, testSettings(url), &out).Run(context.Background())

	assert.Equal(t, []string{"Admin Login", "User Registration", "User Login (Registration)"}, names(rep))
	assert.Equal(t, 0, rep.PassedCount())
	assert.False(t, rep.Passed())
	assert.Contains(t, out.String(), "Failed to register test user")
}

// fakeAPI answers with canned JSON per "METHOD path" key. Values may be a
// func for stateful responses.
func fakeAPI(t *testing.T, routes map[string]func() (int, interface{})) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":"NOT_FOUND"}`))
			return
		}
		status, body := fn()
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fixed(status int, body interface{}) func() (int, interface{}) {
	return func() (int, interface{}) { return status, body }
}

var fakeMatch = map[string]interface{}{
	"id": 7,
	"bet_types": []interface{}{
		map[string]interface{}{"id": 1, "options": []interface{}{map[string]interface{}{"id": 11}}},
		map[string]interface{}{"id": 2, "options": []interface{}{map[string]interface{}{"id": 21}}},
	},
}

func TestBalanceUpdates_DetectsDrift(t *testing.T) {
	balances := []float64{150, 144.99}
	calls := 0
	srv := fakeAPI(t, map[string]func() (int, interface{}){
		"GET /api/auth/me": func() (int, interface{}) {
			b := balances[calls]
			calls++
			return http.StatusOK, map[string]interface{}{"balance": b}
		},
		"GET /api/matches/7":   fixed(http.StatusOK, fakeMatch),
		"POST /api/bets/place": fixed(http.StatusOK, map[string]interface{}{"id": 99}),
	})

	var out bytes.Buffer
	r := newTestRunner(srv.URL, testSettings(srv.URL), &out)
	r.userToken = "tok"
	r.matchID = "7"

	assert.False(t, r.balanceUpdates(context.Background()))
	assert.Contains(t, out.String(), "FAIL Balance Update After Bet - Expected: 145, Got: 144.99")
}

func TestBalanceUpdates_ExactDecimalArithmetic(t *testing.T) {
	balances := []float64{0.3, 0.2}
	calls := 0
	srv := fakeAPI(t, map[string]func() (int, interface{}){
		"GET /api/auth/me": func() (int, interface{}) {
			b := balances[calls]
			calls++
			return http.StatusOK, map[string]interface{}{"balance": b}
		},
		"GET /api/matches/7":   fixed(http.StatusOK, fakeMatch),
		"POST /api/bets/place": fixed(http.StatusOK, map[string]interface{}{"id": 99}),
	})

	r := newTestRunner(srv.URL, testSettings(srv.URL), io.Discard)
	r.fixtures.Stakes.Balance = 0.1
	r.userToken = "tok"
	r.matchID = "7"

	assert.True(t, r.balanceUpdates(context.Background()), "0.3 - 0.1 must equal 0.2 exactly")
}

func TestContract_AcceptedSingleSelectionFails(t *testing.T) {
	srv := fakeAPI(t, map[string]func() (int, interface{}){
		"GET /api/matches/7":      fixed(http.StatusOK, fakeMatch),
		"POST /api/bets/combined": fixed(http.StatusOK, map[string]interface{}{"id": 5}),
	})

	var out bytes.Buffer
	r := newTestRunner(srv.URL, testSettings(srv.URL), &out)
	r.userToken = "tok"
	r.matchID = "7"

	assert.False(t, r.singleSelectionCombinedRejected(context.Background()))
	assert.Contains(t, out.String(), "expected rejection, got status 200")
}

func TestBetValidation_NoPendingBets(t *testing.T) {
	srv := fakeAPI(t, map[string]func() (int, interface{}){
		"GET /api/bets/all": fixed(http.StatusOK, []interface{}{
			map[string]interface{}{"id": "a", "status": "won"},
		}),
	})

	var out bytes.Buffer
	r := newTestRunner(srv.URL, testSettings(srv.URL), &out)
	r.adminToken = "tok"

	assert.False(t, r.betValidation(context.Background()))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), "FAIL Bet Validation - No pending bets to validate"))
}
