package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/akeren/teamup-site/internal/auth"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/pkg/constants"
	"github.com/akeren/teamup-site/pkg/utils"
)

var ErrSecretKeyRequired = errors.New("SECRET_KEY must be set in production")

type AuthConfig struct {
	SecretKey         string
	AdminPasswordHash string
	AdminPassword     string
	SessionTTL        time.Duration
	CookieSecure      bool
}

func NewAuthConfig() *AuthConfig {
	ac := &AuthConfig{
		SecretKey:         utils.GetEnvTrimmed("SECRET_KEY"),
		AdminPasswordHash: sanitizeEnv(GetValueFromEnvironmentVariable("ADMIN_PASSWORD_HASH", "")),
		AdminPassword:     GetValueFromEnvironmentVariable("ADMIN_PASSWORD", ""),
		SessionTTL:        constants.DefaultSessionTTL,
		CookieSecure:      IsProduction(GetAppEnv()),
	}

	if raw := utils.GetEnvTrimmed("SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ac.SessionTTL = parsed
		}
	}

	ac.CookieSecure = utils.GetEnvBool("SESSION_COOKIE_SECURE", ac.CookieSecure)

	return ac
}

// ResolveSecret returns the session signing key. Outside production a
// missing key is replaced by a random one, which logs everyone out on
// restart.
func (ac *AuthConfig) ResolveSecret(logger *log.Logger, appEnv string) ([]byte, error) {
	if ac.SecretKey != "" {
		return []byte(ac.SecretKey), nil
	}
	if IsProduction(appEnv) {
		return nil, ErrSecretKeyRequired
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	logger.Warn("SECRET_KEY not set; using a random per-process key")
	return []byte(hex.EncodeToString(buf)), nil
}

// PasswordVerifier builds the admin credential check. ADMIN_PASSWORD_HASH
// wins over ADMIN_PASSWORD; having neither is a startup error.
func (ac *AuthConfig) PasswordVerifier() (*auth.PasswordVerifier, error) {
	if ac.AdminPasswordHash != "" {
		return auth.NewPasswordVerifier(ac.AdminPasswordHash)
	}
	if ac.AdminPassword != "" {
		return auth.NewPasswordVerifierFromPlain(ac.AdminPassword)
	}
	return nil, fmt.Errorf("%w: set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD", auth.ErrPasswordNotSet)
}
