package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/domain"
)

// DefaultStartingBalance is credited to every newly registered user.
const DefaultStartingBalance = 150.0

// Options configures a Book.
type Options struct {
	StartingBalance float64
	HashCost        int // bcrypt cost; zero means bcrypt.DefaultCost
	Now             func() time.Time
}

type account struct {
	id        uuid.UUID
	email     string
	username  string
	hash      []byte
	role      domain.Role
	balance   decimal.Decimal
	createdAt time.Time
}

type simpleBet struct {
	bet    domain.Bet
	userID uuid.UUID
	amount decimal.Decimal
	cote   decimal.Decimal
}

type combinedBet struct {
	bet    domain.CombinedBet
	userID uuid.UUID
	amount decimal.Decimal
	cote   decimal.Decimal
}

type bonusItem struct {
	bonus domain.Bonus
	price decimal.Decimal
	value decimal.Decimal
}

// Book is an in-memory betting backend honouring the platform's HTTP
// contract. All state lives behind one mutex.
type Book struct {
	mu sync.Mutex

	jwtMgr          *auth.JWTManager
	logger          *slog.Logger
	startingBalance decimal.Decimal
	hashCost        int
	now             func() time.Time

	accounts   map[uuid.UUID]*account
	byEmail    map[string]uuid.UUID
	games      map[domain.ID]*domain.Game
	gameOrder  []domain.ID
	matches    map[domain.ID]*domain.Match
	matchOrder []domain.ID
	bets       []*simpleBet
	combined   []*combinedBet
	bonuses    map[domain.ID]*bonusItem
	bonusOrder []domain.ID
	txs        []domain.Transaction
}

// NewBook creates an empty Book.
func NewBook(jwtMgr *auth.JWTManager, logger *slog.Logger, opts Options) *Book {
	if opts.StartingBalance == 0 {
		opts.StartingBalance = DefaultStartingBalance
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Book{
		jwtMgr:          jwtMgr,
		logger:          logger,
		startingBalance: decimal.NewFromFloat(opts.StartingBalance),
		hashCost:        opts.HashCost,
		now:             opts.Now,
		accounts:        make(map[uuid.UUID]*account),
		byEmail:         make(map[string]uuid.UUID),
		games:           make(map[domain.ID]*domain.Game),
		matches:         make(map[domain.ID]*domain.Match),
		bonuses:         make(map[domain.ID]*bonusItem),
	}
}

func newID() domain.ID {
	return domain.ID(uuid.New().String())
}

// accountFor resolves a JWT subject. Callers hold b.mu.
func (b *Book) accountFor(subject string) (*account, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid token subject")
	}
	acc, ok := b.accounts[id]
	if !ok {
		return nil, domain.ErrUnauthorized("account no longer exists")
	}
	return acc, nil
}

// move applies delta to the account balance and appends a transaction.
// Callers hold b.mu and have already checked funds for debits.
func (b *Book) move(acc *account, typ domain.TransactionType, delta decimal.Decimal, ref string) {
	acc.balance = acc.balance.Add(delta)
	b.txs = append(b.txs, domain.Transaction{
		ID:           newID(),
		UserID:       domain.ID(acc.id.String()),
		Type:         typ,
		Amount:       delta.InexactFloat64(),
		BalanceAfter: acc.balance.InexactFloat64(),
		Reference:    ref,
		CreatedAt:    b.now(),
	})
}

func (a *account) view() domain.User {
	return domain.User{
		ID:        domain.ID(a.id.String()),
		Email:     a.email,
		Username:  a.username,
		Balance:   a.balance.InexactFloat64(),
		Role:      a.role,
		CreatedAt: a.createdAt,
	}
}
