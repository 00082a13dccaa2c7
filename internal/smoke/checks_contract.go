package smoke

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shiiiru/betsmoke/internal/apiclient"
)

// contractChecks asserts the negative backend contracts that the happy-path
// scenario never exercises.
func (r *Runner) contractChecks(ctx context.Context) {
	r.rec.startSection("Contract Checks")
	r.unauthenticatedBetRejected(ctx)
	r.singleSelectionCombinedRejected(ctx)
	r.nonAdminGameCreationRejected(ctx)
}

// rejected passes when the request reached the server and came back with one
// of the wanted statuses.
func rejected(resp *apiclient.Response, err error, ok func(status int) bool) (bool, string) {
	if resp == nil {
		return false, describe(nil, err)
	}
	if ok(resp.Status) {
		return true, ""
	}
	return false, fmt.Sprintf("expected rejection, got status %d: %s", resp.Status, apiclient.Snippet(resp.Body))
}

func isAuthRejection(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func isClientError(status int) bool {
	return status >= 400 && status < 500
}

func (r *Runner) unauthenticatedBetRejected(ctx context.Context) bool {
	const name = "Contract - Unauthenticated Bet Rejected"
	body := placeBetPayload{selectionPayload: selectionPayload{MatchID: r.matchID}, Amount: r.fixtures.Stakes.Simple}
	resp, err := r.client.Post(ctx, "bets/place", body, "")
	ok, detail := rejected(resp, err, isAuthRejection)
	return r.rec.record(name, ok, detail)
}

func (r *Runner) singleSelectionCombinedRejected(ctx context.Context) bool {
	const name = "Contract - Single Selection Combined Rejected"
	if r.userToken == "" || r.matchID.Empty() {
		return r.rec.record(name, false, "Missing user token or match ID")
	}

	m, err := r.fetchMatch(ctx, r.userToken)
	if err != nil {
		return r.rec.record(name, false, "Failed to get match data: "+err.Error())
	}
	sel, err := m.selection(r.matchID, 0)
	if err != nil {
		return r.rec.record(name, false, err.Error())
	}

	resp, err := r.client.Post(ctx, "bets/combined", combinedBetPayload{
		Bets:   []selectionPayload{sel},
		Amount: r.fixtures.Stakes.Combined,
	}, r.userToken)
	ok, detail := rejected(resp, err, isClientError)
	return r.rec.record(name, ok, detail)
}

func (r *Runner) nonAdminGameCreationRejected(ctx context.Context) bool {
	const name = "Contract - Non-admin Game Creation Rejected"
	if r.userToken == "" {
		return r.rec.record(name, false, "No user token available")
	}

	resp, err := r.client.Post(ctx, "games", r.fixtures.gamePayload(), r.userToken)
	ok, detail := rejected(resp, err, isAuthRejection)
	return r.rec.record(name, ok, detail)
}
