package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	ErrUnauthenticated          = fmt.Errorf("session token is invalid")
	AuthContextKey              = AuthKey("auth")
	DefaultCacheSize            = 10000           // Cache up to 10000 tokens
	DefaultCacheEntryExpiration = 5 * time.Minute // Cache tokens for 5 minutes
)

type AuthKey string

// Auth is the identity attached to an authenticated request.
type Auth struct {
	DoctorId string `json:"doctorId"`
}

type Authenticator interface {
	ValidateAndSetAuthData(token string, ec echo.Context) (bool, error)
}

type AuthMiddlewareOpts struct {
	Skipper middleware.Skipper
}

func NewAuthMiddleware(authenticator Authenticator, opts AuthMiddlewareOpts) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Allow skipping authentication for certain routes (e.g. readiness probe)
			if opts.Skipper != nil {
				if opts.Skipper(c) {
					return next(c)
				}
			}

			token := bearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "session token is missing")
			}

			valid, err := authenticator.ValidateAndSetAuthData(token, c)
			if err != nil {
				return &echo.HTTPError{
					Code:     http.StatusUnauthorized,
					Message:  "session token is invalid",
					Internal: err,
				}
			} else if !valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "session token is invalid")
			}

			return next(c)
		}
	}
}

func NewAuthenticator(config *Config) (Authenticator, error) {
	cache, err := lru.New(DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	return &sessionAuthenticator{
		secret: []byte(config.Secret),
		cache:  cache,
	}, nil
}

type sessionAuthenticator struct {
	secret []byte
	cache  *lru.Cache
}

var _ Authenticator = &sessionAuthenticator{}

type cacheEntry struct {
	auth     *Auth
	cachedAt time.Time
}

func (s *sessionAuthenticator) ValidateAndSetAuthData(token string, ec echo.Context) (bool, error) {
	if entry, ok := s.cache.Get(token); ok {
		cached := entry.(cacheEntry)
		if time.Since(cached.cachedAt) < DefaultCacheEntryExpiration {
			setAuthData(ec, cached.auth)
			return true, nil
		}
		s.cache.Remove(token)
	}

	claims, err := parseToken(s.secret, token)
	if err != nil {
		return false, err
	}
	if claims.Subject == "" {
		return false, ErrUnauthenticated
	}

	auth := &Auth{DoctorId: claims.Subject}
	s.cache.Add(token, cacheEntry{auth: auth, cachedAt: time.Now()})
	setAuthData(ec, auth)
	return true, nil
}

func setAuthData(ec echo.Context, auth *Auth) {
	ec.Set(string(AuthContextKey), auth)
}

// GetAuthData returns the identity set by the middleware, or nil when the
// request was not authenticated.
func GetAuthData(ec echo.Context) *Auth {
	if auth, ok := ec.Get(string(AuthContextKey)).(*Auth); ok {
		return auth
	}
	return nil
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
