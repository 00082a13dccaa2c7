package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shiiiru/betsmoke/internal/domain"
)

// CreateBonusInput holds the bonus creation request.
type CreateBonusInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	BonusType   string  `json:"bonus_type"`
	Value       float64 `json:"value"`
	Stock       int     `json:"stock"`
}

// CreateBonus adds a purchasable bonus.
func (b *Book) CreateBonus(_ context.Context, input CreateBonusInput) (*domain.Bonus, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrValidation("name is required")
	}
	price := decimal.NewFromFloat(input.Price)
	if err := domain.ValidatePositiveAmount(price); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if input.Stock < 0 {
		return nil, domain.ErrValidation("stock cannot be negative")
	}
	if input.BonusType == "" {
		return nil, domain.ErrValidation("bonus_type is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	item := &bonusItem{
		price: price,
		value: decimal.NewFromFloat(input.Value),
		bonus: domain.Bonus{
			ID:          newID(),
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			BonusType:   input.BonusType,
			Value:       input.Value,
			Stock:       input.Stock,
		},
	}
	b.bonuses[item.bonus.ID] = item
	b.bonusOrder = append(b.bonusOrder, item.bonus.ID)
	out := item.bonus
	return &out, nil
}

// ListBonuses returns bonuses in creation order.
func (b *Book) ListBonuses(_ context.Context) []domain.Bonus {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Bonus, 0, len(b.bonusOrder))
	for _, id := range b.bonusOrder {
		out = append(out, b.bonuses[id].bonus)
	}
	return out
}

// PurchaseBonus debits the price, credits the value for free_ecu bonuses, and
// decrements stock.
func (b *Book) PurchaseBonus(_ context.Context, subject string, id domain.ID) (*domain.PurchaseResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}
	item, ok := b.bonuses[id]
	if !ok {
		return nil, domain.ErrNotFound("bonus", id.String())
	}
	if item.bonus.Stock <= 0 {
		return nil, domain.ErrOutOfStock(id.String())
	}
	if acc.balance.LessThan(item.price) {
		return nil, domain.ErrInsufficientBalance()
	}

	b.move(acc, domain.TxBonusPurchase, item.price.Neg(), id.String())
	if item.bonus.BonusType == domain.BonusFreeECU && item.value.IsPositive() {
		b.move(acc, domain.TxBonusCredit, item.value, id.String())
	}
	item.bonus.Stock--

	return &domain.PurchaseResult{
		Message:    "bonus " + item.bonus.Name + " purchased",
		NewBalance: acc.balance.InexactFloat64(),
	}, nil
}
