package service

import (
	"context"
	"time"

	"staking-eligibility-service/internal/core/ports"
	"staking-eligibility-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// OperatorAuthService implements ports.AuthService. A single operator access
// key (stored as an Argon2id hash in configuration) unlocks the ingestion
// trigger; there is no user database.
type OperatorAuthService struct {
	operatorKeyHash string
	hashSvc         ports.HashService
	tokenSvc        ports.TokenService
	log             zerolog.Logger
}

// NewOperatorAuthService creates a new OperatorAuthService.
func NewOperatorAuthService(operatorKeyHash string, hashSvc ports.HashService, tokenSvc ports.TokenService, log zerolog.Logger) *OperatorAuthService {
	return &OperatorAuthService{
		operatorKeyHash: operatorKeyHash,
		hashSvc:         hashSvc,
		tokenSvc:        tokenSvc,
		log:             log,
	}
}

// Login exchanges the operator access key for a JWT.
func (s *OperatorAuthService) Login(_ context.Context, accessKey string) (string, time.Time, error) {
	if s.operatorKeyHash == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hashSvc.Verify(accessKey, s.operatorKeyHash)
	if err != nil {
		s.log.Error().Err(err).Msg("operator key hash verification failed")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	if !ok {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate("operator")
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}

	return token, expiry, nil
}
