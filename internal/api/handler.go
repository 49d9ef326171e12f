// Package api exposes the credential and ledger services over HTTP.
package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/healthtrack/internal/services"
	"go.uber.org/zap"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	loginAttemptLimit   = 8
	loginAttemptWindow  = 15 * time.Minute
)

type Handler struct {
	auth      *services.AuthService
	ledger    *services.LedgerService
	dashboard *services.DashboardService

	secretKey    []byte
	tokenTTL     time.Duration
	cookieSecure bool
	location     *time.Location
	logger       *zap.Logger
	validate     *validator.Validate
	loginLimiter *attemptLimiter
	now          func() time.Time
}

type Options struct {
	SecretKey    []byte
	TokenTTL     time.Duration
	CookieSecure bool
	Location     *time.Location
	Logger       *zap.Logger
	BcryptCost   int
}

func NewHandler(repositories services.Repositories, options Options) (*Handler, error) {
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if repositories.Users == nil || repositories.Records == nil || repositories.Categories == nil {
		return nil, errors.New("repositories are required")
	}
	if options.TokenTTL <= 0 {
		options.TokenTTL = defaultAuthTokenTTL
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	return &Handler{
		auth:         services.NewAuthService(repositories.Users, options.BcryptCost),
		ledger:       services.NewLedgerService(repositories.Records, repositories.Categories),
		dashboard:    services.NewDashboardService(repositories.Users, repositories.Records, repositories.Categories),
		secretKey:    options.SecretKey,
		tokenTTL:     options.TokenTTL,
		cookieSecure: options.CookieSecure,
		location:     options.Location,
		logger:       options.Logger,
		validate:     newValidator(),
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}, nil
}
