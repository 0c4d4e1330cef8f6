package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"billiardsone/backend/services/auth-service/internal/models"
	"billiardsone/backend/services/auth-service/internal/password"
	"billiardsone/backend/services/auth-service/internal/repository"
)

// ErrInvalidCredentials represents login failure.
var ErrInvalidCredentials = errors.New("auth: incorrect mobile number or PIN")

// AccountRepository defines storage contract used by the service.
type AccountRepository interface {
	OwnerByMobile(ctx context.Context, mobileNo string) (*models.Account, error)
	StaffByMobile(ctx context.Context, mobileNo string) (*models.Account, error)
}

// TokenIssuer signs access tokens. Implemented by auth.TokenService.
type TokenIssuer interface {
	GenerateToken(subject, role, cafeID string) (string, error)
}

// AuthService contains login logic.
type AuthService struct {
	repo      AccountRepository
	hasher    password.Hasher
	tokenizer TokenIssuer
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo AccountRepository, hasher password.Hasher, tokenizer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Login authenticates an owner or staff member by mobile number and PIN and
// produces a JWT. Owners are looked up first.
func (s *AuthService) Login(ctx context.Context, mobileNo, pin string) (*models.LoginResult, error) {
	mobileNo = strings.TrimSpace(mobileNo)
	if mobileNo == "" || pin == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.lookup(ctx, mobileNo)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(account.PINHash, pin); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.logger.Error("stored pin hash unusable",
				zap.String("account_id", account.ID.String()),
				zap.String("role", account.Role),
				zap.Error(err),
			)
		}
		return nil, ErrInvalidCredentials
	}

	cafeID := ""
	if account.CafeID != nil {
		cafeID = account.CafeID.String()
	}
	token, err := s.tokenizer.GenerateToken(account.ID.String(), account.Role, cafeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("account_id", account.ID.String()), zap.String("role", account.Role))
	return &models.LoginResult{
		AccessToken: token,
		Role:        account.Role,
		Subject:     account.ID,
		CafeID:      account.CafeID,
	}, nil
}

func (s *AuthService) lookup(ctx context.Context, mobileNo string) (*models.Account, error) {
	owner, err := s.repo.OwnerByMobile(ctx, mobileNo)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	staff, err := s.repo.StaffByMobile(ctx, mobileNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return staff, nil
}
