package smoke

import (
	"context"

	"github.com/shiiiru/betsmoke/internal/domain"
)

var statsFields = []string{"total_users", "total_bets", "total_ecu_in_circulation", "pending_validations"}

// createAs posts body and returns the id of the created entity.
func (r *Runner) createAs(ctx context.Context, endpoint string, body interface{}) (domain.ID, string) {
	resp, err := r.client.Post(ctx, endpoint, body, r.adminToken)
	var out idView
	if err != nil || !resp.Has("id") || resp.Decode(&out) != nil || out.ID.Empty() {
		return "", describe(resp, err, "id")
	}
	return out.ID, ""
}

func (r *Runner) gameCreation(ctx context.Context) bool {
	r.rec.startSection("Game Management")
	if r.adminToken == "" {
		return r.rec.record("Game Creation", false, "No admin token available")
	}

	id, detail := r.createAs(ctx, "games", r.fixtures.gamePayload())
	if id.Empty() {
		return r.rec.record("Game Creation", false, detail)
	}
	r.gameID = id
	return r.rec.record("Game Creation", true, "")
}

func (r *Runner) matchCreation(ctx context.Context) bool {
	r.rec.startSection("Match Creation")
	if r.adminToken == "" || r.gameID.Empty() {
		return r.rec.record("Match Creation", false, "Missing admin token or game ID")
	}

	id, detail := r.createAs(ctx, "matches", r.fixtures.matchPayload(r.gameID, r.now()))
	if id.Empty() {
		return r.rec.record("Match Creation", false, detail)
	}
	r.matchID = id
	return r.rec.record("Match Creation with Bet Types", true, "")
}

func (r *Runner) bonusCreation(ctx context.Context) bool {
	r.rec.startSection("Bonus Creation")
	if r.adminToken == "" {
		return r.rec.record("Bonus Creation", false, "No admin token available")
	}

	id, detail := r.createAs(ctx, "bonuses", r.fixtures.bonusPayload())
	if id.Empty() {
		return r.rec.record("Bonus Creation", false, detail)
	}
	r.bonusID = id
	return r.rec.record("Bonus Creation", true, "")
}

func (r *Runner) adminStats(ctx context.Context) bool {
	r.rec.startSection("Admin Stats")
	if r.adminToken == "" {
		return r.rec.record("Admin Stats", false, "No admin token available")
	}

	resp, err := r.client.Get(ctx, "admin/stats", r.adminToken)
	if err != nil || !resp.Has(statsFields...) {
		return r.rec.record("Admin Stats", false, describe(resp, err, statsFields...))
	}
	return r.rec.record("Admin Stats", true, "")
}

func (r *Runner) betValidation(ctx context.Context) bool {
	r.rec.startSection("Bet Validation")
	if r.adminToken == "" {
		return r.rec.record("Bet Validation", false, "No admin token available")
	}

	resp, err := r.client.Get(ctx, "bets/all", r.adminToken)
	if err != nil {
		return r.rec.record("Bet Validation", false, "Failed to get bets list: "+describe(resp, err))
	}
	var bets []betView
	if err := resp.Decode(&bets); err != nil {
		return r.rec.record("Bet Validation", false, "Failed to get bets list: "+err.Error())
	}

	var pending *betView
	for i := range bets {
		if bets[i].Status == string(domain.BetPending) {
			pending = &bets[i]
			break
		}
	}
	if pending == nil {
		return r.rec.record("Bet Validation", false, "No pending bets to validate")
	}

	resp, err = r.client.Post(ctx, "bets/"+pending.ID.String()+"/validate",
		map[string]domain.BetStatus{"status": domain.BetWon}, r.adminToken)
	if err != nil {
		return r.rec.record("Bet Validation", false, describe(resp, err))
	}
	r.logger.Debug("validated bet", "bet_id", pending.ID)
	return r.rec.record("Bet Validation (Won)", true, "")
}
