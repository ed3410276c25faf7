package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/logger"
	"github.com/veritrace/veritrace/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY contextKey = "auth_type"
	ACTOR_KEY     contextKey = "actor"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// ActorClaims are the JWT claims minted by the account service. Subject is
// the actor id; Role is the platform role.
type ActorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success  bool
	AuthType string // "jwt", "apikey" or "session"
	Actor    *domain.Actor
	Error    error
}

// Authenticator validates Authorization headers against the three accepted
// credential kinds: RSA-signed JWTs, static API keys (platform role) and
// opaque session tokens resolved through redis.
type Authenticator struct {
	cfg      AuthConfig
	sessions session.Store
	apiKeys  map[string]bool
}

// NewAuthenticator creates an authenticator; sessions may be nil when
// session-token auth is not wired.
func NewAuthenticator(cfg AuthConfig, sessions session.Store) *Authenticator {
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}
	return &Authenticator{cfg: cfg, sessions: sessions, apiKeys: apiKeyMap}
}

// Authenticate validates the Authorization header and resolves the actor.
// Bearer credentials are tried as a JWT first and fall back to a session
// token lookup, so mobile clients holding platform-issued session tokens and
// services holding JWTs share one header format.
func (a *Authenticator) Authenticate(c *gin.Context, authHeader string) AuthResult {
	result := AuthResult{Success: false}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	authType := strings.ToLower(parts[0])
	credentials := parts[1]

	switch authType {
	case "bearer":
		claims, err := validateJWT(credentials, a.cfg.JWTPublicKey)
		if err == nil {
			actor, actorErr := actorFromClaims(claims)
			if actorErr != nil {
				result.Error = actorErr
				return result
			}
			result.Success = true
			result.AuthType = "jwt"
			result.Actor = actor
			return result
		}

		// Not a valid JWT; try it as an opaque session token.
		if a.sessions != nil {
			actor, sessErr := a.sessions.Resolve(c.Request.Context(), credentials)
			if sessErr != nil {
				result.Error = fmt.Errorf("session lookup failed: %w", sessErr)
				return result
			}
			if actor != nil {
				result.Success = true
				result.AuthType = "session"
				result.Actor = actor
				return result
			}
		}

		result.Error = err

	case "apikey":
		if err := validateAPIKey(credentials, a.apiKeys); err != nil {
			result.Error = err
			return result
		}
		// API keys act for the platform itself.
		result.Success = true
		result.AuthType = "apikey"
		result.Actor = &domain.Actor{ID: "platform", Role: domain.RolePlatform}

	default:
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
	}

	return result
}

// Auth returns a gin middleware that authenticates the request and stores
// the resolved actor in the gin context.
func (a *Authenticator) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		result := a.Authenticate(c, authHeader)

		if !result.Success {
			logger.Warn("Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    domain.ErrNotPermitted.Code,
					"message": "Authentication failed",
				},
			})
			return
		}

		c.Set(string(AUTH_TYPE_KEY), result.AuthType)
		c.Set(string(ACTOR_KEY), *result.Actor)

		logger.Debug("Authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.String("auth_type", result.AuthType),
			zap.String("actor_id", result.Actor.ID),
			zap.String("role", string(result.Actor.Role)),
		)

		c.Next()
	}
}

// ActorFromContext returns the authenticated actor stored by Auth
func ActorFromContext(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(string(ACTOR_KEY))
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

func actorFromClaims(claims *ActorClaims) (*domain.Actor, error) {
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	role := domain.Role(claims.Role)
	switch role {
	case domain.RoleFactory, domain.RoleBusiness, domain.RoleCourier, domain.RolePlatform:
	default:
		return nil, fmt.Errorf("token carries unknown role %q", claims.Role)
	}
	return &domain.Actor{ID: claims.Subject, Role: role}, nil
}

// validateJWT validates a JWT token with RSA signature and returns claims
func validateJWT(tokenString string, publicKeyPEM string) (*ActorClaims, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}

	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	now := time.Now()
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}

// validateAPIKey validates an API key
func validateAPIKey(apiKey string, validKeys map[string]bool) error {
	if len(validKeys) == 0 {
		return errors.New("no API keys configured")
	}

	if !validKeys[apiKey] {
		return errors.New("invalid API key")
	}

	return nil
}
