package smoke

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var dashboardEndpoints = []struct {
	endpoint, name string
}{
	{"matches?status=upcoming", "Available Matches"},
	{"bets/my", "My Bets"},
	{"bets/combined/my", "My Combined Bets"},
	{"bonuses", "Available Bonuses"},
	{"transactions/my", "Transaction History"},
}

func (r *Runner) simpleBetPlacement(ctx context.Context) bool {
	const name = "Simple Bet Placement"
	r.rec.startSection(name)
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

	resp, err := r.client.Post(ctx, "bets/place", placeBetPayload{selectionPayload: sel, Amount: r.fixtures.Stakes.Simple}, r.userToken)
	if err != nil || !resp.Has("id") {
		return r.rec.record(name, false, describe(resp, err, "id"))
	}
	return r.rec.record(name, true, "")
}

func (r *Runner) combinedBetPlacement(ctx context.Context) bool {
	const name = "Combined Bet Placement"
	r.rec.startSection(name)
	if r.userToken == "" || r.matchID.Empty() {
		return r.rec.record(name, false, "Missing user token or match ID")
	}

	m, err := r.fetchMatch(ctx, r.userToken)
	if err != nil || len(m.BetTypes) < 2 {
		return r.rec.record(name, false, "Need at least 2 bet types for combined bet")
	}
	first, err := m.selection(r.matchID, 0)
	if err != nil {
		return r.rec.record(name, false, err.Error())
	}
	second, err := m.selection(r.matchID, 1)
	if err != nil {
		return r.rec.record(name, false, err.Error())
	}

	resp, err := r.client.Post(ctx, "bets/combined", combinedBetPayload{
		Bets:   []selectionPayload{first, second},
		Amount: r.fixtures.Stakes.Combined,
	}, r.userToken)
	if err != nil || !resp.Has("id") {
		return r.rec.record(name, false, describe(resp, err, "id"))
	}
	return r.rec.record("Combined Bet Placement (2+ bets)", true, "")
}

func (r *Runner) bonusPurchase(ctx context.Context) bool {
	const name = "Bonus Purchase"
	r.rec.startSection(name)
	if r.userToken == "" || r.bonusID.Empty() {
		return r.rec.record(name, false, "Missing user token or bonus ID")
	}

	resp, err := r.client.Post(ctx, "bonuses/"+r.bonusID.String()+"/purchase", nil, r.userToken)
	if err != nil || !resp.Has("new_balance") {
		return r.rec.record(name, false, describe(resp, err, "new_balance"))
	}
	return r.rec.record(name, true, "")
}

// userDashboard records one result per read endpoint.
func (r *Runner) userDashboard(ctx context.Context) bool {
	r.rec.startSection("User Dashboard Data")
	if r.userToken == "" {
		return r.rec.record("User Dashboard Data", false, "No user token available")
	}

	allOK := true
	for _, ep := range dashboardEndpoints {
		name := "User Dashboard - " + ep.name
		resp, err := r.client.Get(ctx, ep.endpoint, r.userToken)
		if err != nil {
			r.rec.record(name, false, describe(resp, err))
			allOK = false
			continue
		}
		r.rec.record(name, true, "")
	}
	return allOK
}

// balanceUpdates places a small bet and requires the balance to drop by the
// stake exactly.
func (r *Runner) balanceUpdates(ctx context.Context) bool {
	r.rec.startSection("Balance Updates")
	if r.userToken == "" {
		return r.rec.record("Balance Updates", false, "No user token available")
	}

	before, err := r.balance(ctx)
	if err != nil {
		return r.rec.record("Balance Updates", false, "Failed to get user data: "+err.Error())
	}

	stake, err := r.placeProbeBet(ctx)
	if err != nil {
		return r.rec.record("Balance Updates", false, "Could not test balance updates: "+err.Error())
	}

	after, err := r.balance(ctx)
	if err != nil {
		return r.rec.record("Balance Update After Bet", false, "Failed to get user data: "+err.Error())
	}
	want := before.Sub(stake)
	if !after.Equal(want) {
		return r.rec.record("Balance Update After Bet", false,
			fmt.Sprintf("Expected: %s, Got: %s", want.String(), after.String()))
	}
	return r.rec.record("Balance Update After Bet", true, "")
}

// placeProbeBet stakes the balance fixture on the first option of the stored
// match and returns the stake.
func (r *Runner) placeProbeBet(ctx context.Context) (decimal.Decimal, error) {
	if r.matchID.Empty() {
		return decimal.Zero, fmt.Errorf("no match available")
	}
	m, err := r.fetchMatch(ctx, r.userToken)
	if err != nil {
		return decimal.Zero, err
	}
	sel, err := m.selection(r.matchID, 0)
	if err != nil {
		return decimal.Zero, err
	}
	amount := r.fixtures.Stakes.Balance
	if _, err := r.client.Post(ctx, "bets/place", placeBetPayload{selectionPayload: sel, Amount: amount}, r.userToken); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(amount), nil
}

func (r *Runner) balance(ctx context.Context) (decimal.Decimal, error) {
	resp, err := r.client.Get(ctx, "auth/me", r.userToken)
	if err != nil {
		return decimal.Zero, err
	}
	if !resp.Has("balance") {
		return decimal.Zero, fmt.Errorf("auth/me response has no balance: %s", describe(resp, nil, "balance"))
	}
	var me meView
	if err := resp.Decode(&me); err != nil {
		return decimal.Zero, err
	}
	return me.Balance, nil
}
