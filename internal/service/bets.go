package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiiiru/betsmoke/internal/domain"
)

// PlaceBetInput holds a simple bet request.
type PlaceBetInput struct {
	MatchID   domain.ID `json:"match_id"`
	BetTypeID domain.ID `json:"bet_type_id"`
	OptionID  domain.ID `json:"option_id"`
	Amount    float64   `json:"amount"`
}

// CombinedBetInput holds a combined bet request.
type CombinedBetInput struct {
	Bets   []domain.Selection `json:"bets"`
	Amount float64            `json:"amount"`
}

// ValidateBetInput holds the settlement request.
type ValidateBetInput struct {
	Status domain.BetStatus `json:"status"`
}

// PlaceBet debits the stake and records a pending simple bet.
func (b *Book) PlaceBet(_ context.Context, subject string, input PlaceBetInput) (*domain.Bet, error) {
	amount := decimal.NewFromFloat(input.Amount)
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}
	m, opt, err := b.findOption(input.MatchID, input.BetTypeID, input.OptionID)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MatchFinished {
		return nil, domain.ErrValidation("match is finished")
	}
	if acc.balance.LessThan(amount) {
		return nil, domain.ErrInsufficientBalance()
	}

	cote := decimal.NewFromFloat(opt.Cote)
	rec := &simpleBet{
		userID: acc.id,
		amount: amount,
		cote:   cote,
		bet: domain.Bet{
			ID:           newID(),
			UserID:       domain.ID(acc.id.String()),
			MatchID:      input.MatchID,
			BetTypeID:    input.BetTypeID,
			OptionID:     input.OptionID,
			Amount:       amount.InexactFloat64(),
			Cote:         opt.Cote,
			PotentialWin: amount.Mul(cote).Round(2).InexactFloat64(),
			Status:       domain.BetPending,
			CreatedAt:    b.now(),
		},
	}
	b.bets = append(b.bets, rec)
	b.move(acc, domain.TxBet, amount.Neg(), rec.bet.ID.String())

	out := rec.bet
	return &out, nil
}

// PlaceCombinedBet debits one stake for several selections on distinct bet
// types. The combined cote is the product of the selected cotes.
func (b *Book) PlaceCombinedBet(_ context.Context, subject string, input CombinedBetInput) (*domain.CombinedBet, error) {
	if err := domain.ValidateSelections(input.Bets); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	amount := decimal.NewFromFloat(input.Amount)
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}

	cote := decimal.NewFromInt(1)
	for _, sel := range input.Bets {
		m, opt, err := b.findOption(sel.MatchID, sel.BetTypeID, sel.OptionID)
		if err != nil {
			return nil, err
		}
		if m.Status == domain.MatchFinished {
			return nil, domain.ErrValidation("match is finished")
		}
		cote = cote.Mul(decimal.NewFromFloat(opt.Cote))
	}
	if acc.balance.LessThan(amount) {
		return nil, domain.ErrInsufficientBalance()
	}

	rec := &combinedBet{
		userID: acc.id,
		amount: amount,
		cote:   cote,
		bet: domain.CombinedBet{
			ID:           newID(),
			UserID:       domain.ID(acc.id.String()),
			Bets:         append([]domain.Selection(nil), input.Bets...),
			Amount:       amount.InexactFloat64(),
			TotalCote:    cote.Round(4).InexactFloat64(),
			PotentialWin: amount.Mul(cote).Round(2).InexactFloat64(),
			Status:       domain.BetPending,
			CreatedAt:    b.now(),
		},
	}
	b.combined = append(b.combined, rec)
	b.move(acc, domain.TxCombinedBet, amount.Neg(), rec.bet.ID.String())

	out := rec.bet
	return &out, nil
}

// MyBets lists the caller's simple bets, oldest first.
func (b *Book) MyBets(_ context.Context, subject string) ([]domain.Bet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}
	out := []domain.Bet{}
	for _, rec := range b.bets {
		if rec.userID == acc.id {
			out = append(out, rec.bet)
		}
	}
	return out, nil
}

// MyCombinedBets lists the caller's combined bets, oldest first.
func (b *Book) MyCombinedBets(_ context.Context, subject string) ([]domain.CombinedBet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}
	out := []domain.CombinedBet{}
	for _, rec := range b.combined {
		if rec.userID == acc.id {
			out = append(out, rec.bet)
		}
	}
	return out, nil
}

// AllBets lists every simple bet, oldest first.
func (b *Book) AllBets(_ context.Context) []domain.Bet {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Bet, 0, len(b.bets))
	for _, rec := range b.bets {
		out = append(out, rec.bet)
	}
	return out
}

// ValidateBet settles a pending simple or combined bet. A won bet credits
// stake × cote to its owner.
func (b *Book) ValidateBet(_ context.Context, id domain.ID, input ValidateBetInput) (*domain.Bet, error) {
	if err := domain.ValidateSettlement(input.Status); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, rec := range b.bets {
		if rec.bet.ID != id {
			continue
		}
		if rec.bet.Status != domain.BetPending {
			return nil, domain.ErrValidation("bet already settled as " + string(rec.bet.Status))
		}
		rec.bet.Status = input.Status
		b.settle(rec.userID, input.Status, rec.amount.Mul(rec.cote), id)
		out := rec.bet
		return &out, nil
	}

	for _, rec := range b.combined {
		if rec.bet.ID != id {
			continue
		}
		if rec.bet.Status != domain.BetPending {
			return nil, domain.ErrValidation("bet already settled as " + string(rec.bet.Status))
		}
		rec.bet.Status = input.Status
		b.settle(rec.userID, input.Status, rec.amount.Mul(rec.cote), id)
		return &domain.Bet{
			ID:           rec.bet.ID,
			UserID:       rec.bet.UserID,
			Amount:       rec.bet.Amount,
			Cote:         rec.bet.TotalCote,
			PotentialWin: rec.bet.PotentialWin,
			Status:       rec.bet.Status,
			CreatedAt:    rec.bet.CreatedAt,
		}, nil
	}

	return nil, domain.ErrNotFound("bet", id.String())
}

func (b *Book) settle(owner uuid.UUID, status domain.BetStatus, payout decimal.Decimal, id domain.ID) {
	if status != domain.BetWon {
		return
	}
	acc, ok := b.accounts[owner]
	if !ok {
		b.logger.Warn("settled bet owner missing", "bet_id", id, "user_id", owner)
		return
	}
	b.move(acc, domain.TxWin, payout.Round(2), id.String())
}
