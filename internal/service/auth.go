package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/domain"
)

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedAdmin creates (or replaces the password of) the admin account.
func (b *Book) SeedAdmin(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.hashCost)
	if err != nil {
		return domain.ErrInternal("hash password", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(email)
	if id, ok := b.byEmail[key]; ok {
		b.accounts[id].hash = hash
		b.accounts[id].role = domain.RoleAdmin
		return nil
	}
	id := uuid.New()
	b.accounts[id] = &account{
		id:        id,
		email:     email,
		username:  "admin",
		hash:      hash,
		role:      domain.RoleAdmin,
		balance:   decimal.Zero,
		createdAt: b.now(),
	}
	b.byEmail[key] = id
	return nil
}

// Register creates a user account funded with the starting balance.
func (b *Book) Register(_ context.Context, input RegisterInput) (*domain.AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, domain.ErrValidation("username is required")
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), b.hashCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(input.Email)
	if _, exists := b.byEmail[key]; exists {
		return nil, domain.ErrConflict("email already registered")
	}

	acc := &account{
		id:        uuid.New(),
		email:     input.Email,
		username:  input.Username,
		hash:      hash,
		role:      domain.RoleUser,
		balance:   decimal.Zero,
		createdAt: b.now(),
	}
	b.accounts[acc.id] = acc
	b.byEmail[key] = acc.id
	b.move(acc, domain.TxRegistrationBonus, b.startingBalance, "registration")

	token, err := b.jwtMgr.GenerateToken(auth.RealmUser, acc.id, acc.email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	b.logger.Debug("user registered", "user_id", acc.id, "balance", acc.balance.String())
	return &domain.AuthResult{Token: token, User: acc.view()}, nil
}

// Login authenticates a user or admin and returns a JWT in the matching realm.
func (b *Book) Login(_ context.Context, input LoginInput) (*domain.AuthResult, error) {
	b.mu.Lock()
	var (
		acc  *account
		hash []byte
		role domain.Role
	)
	if id, ok := b.byEmail[strings.ToLower(input.Email)]; ok {
		acc = b.accounts[id]
		hash, role = acc.hash, acc.role
	}
	b.mu.Unlock()

	if acc == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	realm := auth.RealmUser
	if role == domain.RoleAdmin {
		realm = auth.RealmAdmin
	}
	token, err := b.jwtMgr.GenerateToken(realm, acc.id, acc.email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return &domain.AuthResult{Token: token, User: acc.view()}, nil
}

// Me returns the account behind a token subject.
func (b *Book) Me(_ context.Context, subject string) (*domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.accountFor(subject)
	if err != nil {
		return nil, err
	}
	u := acc.view()
	return &u, nil
}
