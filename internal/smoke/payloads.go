package smoke

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shiiiru/betsmoke/internal/domain"
)

// Request bodies sent by the checks.

type credentials struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type gamePayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

type optionPayload struct {
	Name string  `json:"name"`
	Cote float64 `json:"cote"`
}

type betTypePayload struct {
	TypeName    string          `json:"type_name"`
	Description string          `json:"description"`
	Options     []optionPayload `json:"options"`
}

type matchPayload struct {
	GameID    domain.ID        `json:"game_id"`
	Team1     string           `json:"team1"`
	Team2     string           `json:"team2"`
	StartDate string           `json:"start_date"`
	BetTypes  []betTypePayload `json:"bet_types"`
}

type bonusPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	BonusType   string  `json:"bonus_type"`
	Value       float64 `json:"value"`
	Stock       int     `json:"stock"`
}

type selectionPayload struct {
	MatchID   domain.ID `json:"match_id"`
	BetTypeID domain.ID `json:"bet_type_id"`
	OptionID  domain.ID `json:"option_id"`
}

type placeBetPayload struct {
	selectionPayload
	Amount float64 `json:"amount"`
}

type combinedBetPayload struct {
	Bets   []selectionPayload `json:"bets"`
	Amount float64            `json:"amount"`
}

// Response shapes read by the checks. Only the fields a check inspects are
// declared; ids accept strings or numbers.

type authView struct {
	Token string `json:"token"`
	User  struct {
		ID      domain.ID       `json:"id"`
		Balance decimal.Decimal `json:"balance"`
	} `json:"user"`
}

type meView struct {
	Balance decimal.Decimal `json:"balance"`
}

type idView struct {
	ID domain.ID `json:"id"`
}

type matchView struct {
	ID       domain.ID `json:"id"`
	BetTypes []struct {
		ID      domain.ID `json:"id"`
		Options []struct {
			ID domain.ID `json:"id"`
		} `json:"options"`
	} `json:"bet_types"`
}

type betView struct {
	ID     domain.ID `json:"id"`
	Status string    `json:"status"`
}

func (f Fixtures) gamePayload() gamePayload {
	return gamePayload{Name: f.Game.Name, Category: f.Game.Category, Icon: f.Game.Icon}
}

func (f Fixtures) matchPayload(gameID domain.ID, now time.Time) matchPayload {
	p := matchPayload{
		GameID:    gameID,
		Team1:     f.Match.Team1,
		Team2:     f.Match.Team2,
		StartDate: now.Add(f.Match.StartOffset).Format(time.RFC3339),
	}
	for _, bt := range f.Match.BetTypes {
		tp := betTypePayload{TypeName: bt.TypeName, Description: bt.Description}
		for _, o := range bt.Options {
			tp.Options = append(tp.Options, optionPayload{Name: o.Name, Cote: o.Cote})
		}
		p.BetTypes = append(p.BetTypes, tp)
	}
	return p
}

func (f Fixtures) bonusPayload() bonusPayload {
	b := f.Bonus
	return bonusPayload{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		BonusType:   b.BonusType,
		Value:       b.Value,
		Stock:       b.Stock,
	}
}
