package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shiiiru/betsmoke/internal/domain"
)

// MyTransactions lists the caller's balance movements, newest first.
func (b *Book) MyTransactions(_ context.Context, subject string) ([]domain.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}
	uid := domain.ID(acc.id.String())
	out := []domain.Transaction{}
	for i := len(b.txs) - 1; i >= 0; i-- {
		if b.txs[i].UserID == uid {
			out = append(out, b.txs[i])
		}
	}
	return out, nil
}

// Stats summarises users, bets and money in circulation.
func (b *Book) Stats(_ context.Context) domain.AdminStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	var stats domain.AdminStats
	circulation := decimal.Zero
	for _, acc := range b.accounts {
		if acc.role != domain.RoleUser {
			continue
		}
		stats.TotalUsers++
		circulation = circulation.Add(acc.balance)
	}
	stats.TotalECUInCirculation = circulation.InexactFloat64()
	stats.TotalBets = len(b.bets) + len(b.combined)
	for _, rec := range b.bets {
		if rec.bet.Status == domain.BetPending {
			stats.PendingValidations++
		}
	}
	for _, rec := range b.combined {
		if rec.bet.Status == domain.BetPending {
			stats.PendingValidations++
		}
	}
	return stats
}
