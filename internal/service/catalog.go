package service

import (
	"context"
	"strings"
	"time"

	"github.com/shiiiru/betsmoke/internal/domain"
)

// CreateGameInput holds the game creation request.
type CreateGameInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// OptionInput is one option of a new bet type.
type OptionInput struct {
	Name string  `json:"name"`
	Cote float64 `json:"cote"`
}

// BetTypeInput is one market of a new match.
type BetTypeInput struct {
	TypeName    string        `json:"type_name"`
	Description string        `json:"description"`
	Options     []OptionInput `json:"options"`
}

// CreateMatchInput holds the match creation request.
type CreateMatchInput struct {
	GameID    domain.ID      `json:"game_id"`
	Team1     string         `json:"team1"`
	Team2     string         `json:"team2"`
	StartDate time.Time      `json:"start_date"`
	BetTypes  []BetTypeInput `json:"bet_types"`
}

// CreateGame adds a game.
func (b *Book) CreateGame(_ context.Context, input CreateGameInput) (*domain.Game, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrValidation("name is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	g := &domain.Game{ID: newID(), Name: input.Name, Category: input.Category, Icon: input.Icon}
	b.games[g.ID] = g
	b.gameOrder = append(b.gameOrder, g.ID)
	out := *g
	return &out, nil
}

// ListGames returns games in creation order.
func (b *Book) ListGames(_ context.Context) []domain.Game {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Game, 0, len(b.gameOrder))
	for _, id := range b.gameOrder {
		out = append(out, *b.games[id])
	}
	return out
}

// CreateMatch adds a match with its bet types, assigning ids to every bet
// type and option.
func (b *Book) CreateMatch(_ context.Context, input CreateMatchInput) (*domain.Match, error) {
	if input.Team1 == "" || input.Team2 == "" {
		return nil, domain.ErrValidation("team1 and team2 are required")
	}
	if input.StartDate.IsZero() {
		return nil, domain.ErrValidation("start_date is required")
	}
	for _, bt := range input.BetTypes {
		if bt.TypeName == "" {
			return nil, domain.ErrValidation("bet type requires type_name")
		}
		if len(bt.Options) == 0 {
			return nil, domain.ErrValidation("bet type " + bt.TypeName + " has no options")
		}
		for _, o := range bt.Options {
			if o.Cote < 1 {
				return nil, domain.ErrValidation("cote must be at least 1.0")
			}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.games[input.GameID]; !ok {
		return nil, domain.ErrNotFound("game", input.GameID.String())
	}

	status := domain.MatchUpcoming
	if !input.StartDate.After(b.now()) {
		status = domain.MatchLive
	}
	m := &domain.Match{
		ID:        newID(),
		GameID:    input.GameID,
		Team1:     input.Team1,
		Team2:     input.Team2,
		StartDate: input.StartDate,
		Status:    status,
	}
	for _, bt := range input.BetTypes {
		t := domain.BetType{ID: newID(), TypeName: bt.TypeName, Description: bt.Description}
		for _, o := range bt.Options {
			t.Options = append(t.Options, domain.BetOption{ID: newID(), Name: o.Name, Cote: o.Cote})
		}
		m.BetTypes = append(m.BetTypes, t)
	}
	b.matches[m.ID] = m
	b.matchOrder = append(b.matchOrder, m.ID)
	return copyMatch(m), nil
}

// GetMatch returns one match.
func (b *Book) GetMatch(_ context.Context, id domain.ID) (*domain.Match, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.matches[id]
	if !ok {
		return nil, domain.ErrNotFound("match", id.String())
	}
	return copyMatch(m), nil
}

// ListMatches returns matches in creation order, optionally filtered by status.
func (b *Book) ListMatches(_ context.Context, status string) ([]domain.Match, error) {
	switch domain.MatchStatus(status) {
	case "", domain.MatchUpcoming, domain.MatchLive, domain.MatchFinished:
	default:
		return nil, domain.ErrValidation("unknown match status: " + status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Match, 0, len(b.matchOrder))
	for _, id := range b.matchOrder {
		m := b.matches[id]
		if status != "" && string(m.Status) != status {
			continue
		}
		out = append(out, *copyMatch(m))
	}
	return out, nil
}

// findOption resolves a (match, bet type, option) triple. Callers hold b.mu.
func (b *Book) findOption(matchID, betTypeID, optionID domain.ID) (*domain.Match, *domain.BetOption, error) {
	m, ok := b.matches[matchID]
	if !ok {
		return nil, nil, domain.ErrNotFound("match", matchID.String())
	}
	for i := range m.BetTypes {
		if m.BetTypes[i].ID != betTypeID {
			continue
		}
		for j := range m.BetTypes[i].Options {
			if m.BetTypes[i].Options[j].ID == optionID {
				return m, &m.BetTypes[i].Options[j], nil
			}
		}
		return nil, nil, domain.ErrNotFound("option", optionID.String())
	}
	return nil, nil, domain.ErrNotFound("bet type", betTypeID.String())
}

func copyMatch(m *domain.Match) *domain.Match {
	out := *m
	out.BetTypes = make([]domain.BetType, len(m.BetTypes))
	for i, bt := range m.BetTypes {
		out.BetTypes[i] = bt
		out.BetTypes[i].Options = append([]domain.BetOption(nil), bt.Options...)
	}
	return &out
}
