package service

import (
	"context"
	"errors"
	"time"

	"hireflow_backend/internal/auth/password"
	"hireflow_backend/internal/auth/repository"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const msgInvalidCredentials = "invalid credentials"

// Config narrows the configuration surface the auth service needs.
type Config interface {
	config.AuthServiceConfig
}

type Service struct {
	repo *repository.Repository
	cfg  Config
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Profile is a recruiter account without credential material.
type Profile struct {
	ID          uuid.UUID
	Email       string
	FullName    string
	Roles       []string
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

func profileOf(rec repository.Recruiter) Profile {
	return Profile{
		ID:          rec.ID,
		Email:       rec.Email,
		FullName:    rec.FullName,
		Roles:       rec.Roles,
		LastLoginAt: rec.LastLoginAt,
		CreatedAt:   rec.CreatedAt,
	}
}

// Login verifies credentials and issues a signed access token.
// Invalid email and invalid password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, Profile, error) {
	rec, err := s.repo.GetRecruiterByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.AuthEvent("login_failed", email, false, "unknown email")
			return "", Profile{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return "", Profile{}, apperr.Internal("failed to look up account")
	}

	if !rec.IsActive {
		s.log.AuthEvent("login_inactive", email, false, "account inactive")
		return "", Profile{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := password.Compare(rec.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login_failed", email, false, "wrong password")
		return "", Profile{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	accessToken, err := s.signJWT(rec)
	if err != nil {
		return "", Profile{}, apperr.Internal("failed to sign token")
	}

	if err := s.repo.UpdateLastLogin(ctx, rec.ID); err != nil {
		s.log.Warn("failed to record last login", "recruiterId", rec.ID, "error", err)
	}

	s.log.AuthEvent("login", email, true, "")
	return accessToken, profileOf(rec), nil
}

// Register creates a recruiter account. Restricted to admin callers at the
// handler layer.
func (s *Service) Register(ctx context.Context, email, plainPassword, fullName string, roles []string) (Profile, error) {
	if len(roles) == 0 {
		roles = []string{"recruiter"}
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return Profile{}, apperr.Internal("failed to hash password")
	}

	rec, err := s.repo.CreateRecruiter(ctx, email, hash, fullName, roles)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return Profile{}, apperr.Conflict("email already in use")
		}
		return Profile{}, apperr.Internal("failed to create account")
	}
	return profileOf(rec), nil
}

func (s *Service) GetMe(ctx context.Context, recruiterID uuid.UUID) (Profile, error) {
	rec, err := s.repo.GetRecruiterByID(ctx, recruiterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Profile{}, apperr.NotFound("account not found")
		}
		return Profile{}, apperr.Internal("failed to load account")
	}
	return profileOf(rec), nil
}

// ListRecruiters returns active recruiter accounts, used for application
// assignment pickers.
func (s *Service) ListRecruiters(ctx context.Context) ([]Profile, error) {
	recs, err := s.repo.ListRecruiters(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list accounts")
	}
	profiles := make([]Profile, 0, len(recs))
	for _, rec := range recs {
		profiles = append(profiles, profileOf(rec))
	}
	return profiles, nil
}

func (s *Service) signJWT(rec repository.Recruiter) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   rec.ID.String(),
		"name":  rec.FullName,
		"roles": rec.Roles,
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
