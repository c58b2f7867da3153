package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/config"
)

type Service struct {
	repo Repository
	cfg  config.Config
}

func NewService(repo Repository, cfg config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

func (s *Service) GetByID(id int) (User, error) {
	u, err := s.repo.GetByID(id)
	if err == ErrNotFound {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, apperr.Infrastructure("could not load user", err)
	}
	return u, nil
}

// Register creates an account seeded with the configured wallet balance and
// the address sentinel.
func (s *Service) Register(name, email, password string) (User, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, apperr.Conflict("email already exists")
	} else if err != ErrNotFound {
		return User{}, apperr.Infrastructure("could not check email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Infrastructure("could not hash password", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := s.repo.Create(User{
		Name:        name,
		Email:       email,
		Password:    string(hashed),
		WalletMoney: s.cfg.DefaultWalletMoney,
		Address:     s.cfg.DefaultAddress,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err == ErrEmailExists {
		return User{}, apperr.Conflict("email already exists")
	}
	if err != nil {
		return User{}, apperr.Infrastructure("could not create user", err)
	}
	return created, nil
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SetAddress replaces the sentinel with a real shipping address.
func (s *Service) SetAddress(id int, address string) (User, error) {
	address = strings.TrimSpace(address)
	if len(address) < s.cfg.MinAddressLength {
		return User{}, apperr.Validation("address is too short")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	u, err := s.repo.UpdateAddress(id, address, now)
	if err == ErrNotFound {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, apperr.Infrastructure("could not update address", err)
	}
	return u, nil
}

// HasSetAddress reports whether the user replaced the sentinel address.
func (s *Service) HasSetAddress(u User) bool {
	return u.Address != s.cfg.DefaultAddress
}
