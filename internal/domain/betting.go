package domain

import "time"

// Role distinguishes admin sessions from regular user sessions.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the account view returned by auth endpoints and auth/me.
type User struct {
	ID        ID        `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Balance   float64   `json:"balance"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is returned by auth/register and auth/login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Game is a betting category created by an admin (e.g. a video game title).
type Game struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// MatchStatus tracks where a match is in its lifecycle.
type MatchStatus string

const (
	MatchUpcoming MatchStatus = "upcoming"
	MatchLive     MatchStatus = "live"
	MatchFinished MatchStatus = "finished"
)

// BetOption is one selectable outcome of a bet type.
type BetOption struct {
	ID   ID      `json:"id"`
	Name string  `json:"name"`
	Cote float64 `json:"cote"`
}

// BetType is a market on a match, e.g. "Winner" or "First Blood".
type BetType struct {
	ID          ID          `json:"id"`
	TypeName    string      `json:"type_name"`
	Description string      `json:"description"`
	Options     []BetOption `json:"options"`
}

// Match belongs to a game and carries its bet types.
type Match struct {
	ID        ID          `json:"id"`
	GameID    ID          `json:"game_id"`
	Team1     string      `json:"team1"`
	Team2     string      `json:"team2"`
	StartDate time.Time   `json:"start_date"`
	Status    MatchStatus `json:"status"`
	BetTypes  []BetType   `json:"bet_types"`
}

// BetStatus is the settlement state of a bet.
type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// Bet is a simple wager on one option.
type Bet struct {
	ID           ID        `json:"id"`
	UserID       ID        `json:"user_id"`
	MatchID      ID        `json:"match_id"`
	BetTypeID    ID        `json:"bet_type_id"`
	OptionID     ID        `json:"option_id"`
	Amount       float64   `json:"amount"`
	Cote         float64   `json:"cote"`
	PotentialWin float64   `json:"potential_win"`
	Status       BetStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Selection is one leg of a combined bet.
type Selection struct {
	MatchID   ID `json:"match_id"`
	BetTypeID ID `json:"bet_type_id"`
	OptionID  ID `json:"option_id"`
}

// CombinedBet spans several selections settled as one unit under one stake.
type CombinedBet struct {
	ID           ID          `json:"id"`
	UserID       ID          `json:"user_id"`
	Bets         []Selection `json:"bets"`
	Amount       float64     `json:"amount"`
	TotalCote    float64     `json:"total_cote"`
	PotentialWin float64     `json:"potential_win"`
	Status       BetStatus   `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// BonusFreeECU credits its value to the buyer's balance on purchase.
const BonusFreeECU = "free_ecu"

// Bonus is a purchasable item.
type Bonus struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	BonusType   string  `json:"bonus_type"`
	Value       float64 `json:"value"`
	Stock       int     `json:"stock"`
}

// PurchaseResult is returned by bonuses/{id}/purchase.
type PurchaseResult struct {
	Message    string  `json:"message"`
	NewBalance float64 `json:"new_balance"`
}

// TransactionType enumerates balance movements.
type TransactionType string

const (
	TxRegistrationBonus TransactionType = "registration_bonus"
	TxBet               TransactionType = "bet"
	TxCombinedBet       TransactionType = "combined_bet"
	TxWin               TransactionType = "win"
	TxBonusPurchase     TransactionType = "bonus_purchase"
	TxBonusCredit       TransactionType = "bonus_credit"
)

// Transaction is an append-only balance movement.
type Transaction struct {
	ID           ID              `json:"id"`
	UserID       ID              `json:"user_id"`
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	BalanceAfter float64         `json:"balance_after"`
	Reference    string          `json:"reference,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers            int     `json:"total_users"`
	TotalBets             int     `json:"total_bets"`
	TotalECUInCirculation float64 `json:"total_ecu_in_circulation"`
	PendingValidations    int     `json:"pending_validations"`
}
