package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/identity"
	"github.com/innkeep/backend/internal/domain/shared"
	"github.com/innkeep/backend/internal/infrastructure/auth"
)

// AuthService handles personnel sign-in and account management
type AuthService struct {
	personnelRepo identity.PersonnelRepository
	jwtService    *auth.JWTService
	logger        *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(personnelRepo identity.PersonnelRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		personnelRepo: personnelRepo,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// Login verifies credentials and returns a token pair. Failures are
// reported uniformly so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	p, err := s.personnelRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !p.Active || !p.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, shared.ErrUnauthorized
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   p.ID,
		Username: p.Username,
		Role:     string(p.Role),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Tokens:    tokens,
		Personnel: ToPersonnelResponse(p),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	p, err := s.personnelRepo.FindByID(ctx, id)
	if err != nil || !p.Active {
		return nil, shared.ErrUnauthorized
	}
	return s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   p.ID,
		Username: p.Username,
		Role:     string(p.Role),
	})
}

// CreatePersonnel registers a new staff account
func (s *AuthService) CreatePersonnel(ctx context.Context, req CreatePersonnelRequest) (*PersonnelResponse, error) {
	if existing, err := s.personnelRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}
	p, err := identity.NewPersonnel(req.Username, req.Password, req.DisplayName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.personnelRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPersonnelResponse(p)
	return &resp, nil
}

// ListPersonnel lists staff accounts
func (s *AuthService) ListPersonnel(ctx context.Context, filter shared.Filter) ([]PersonnelResponse, error) {
	people, err := s.personnelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PersonnelResponse, 0, len(people))
	for i := range people {
		responses = append(responses, ToPersonnelResponse(&people[i]))
	}
	return responses, nil
}

// DeactivatePersonnel disables a staff account
func (s *AuthService) DeactivatePersonnel(ctx context.Context, id uuid.UUID) error {
	p, err := s.personnelRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Deactivate()
	return s.personnelRepo.Save(ctx, p)
}
