package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/services"
)

// SessionAuth validates the bearer token and checks that its session is
// still live in redis, so a logout takes effect before the token expires.
// When jwksURL is set, tokens are verified against the remote key set
// instead of the shared secret.
func SessionAuth(cacheSvc caching.CacheService, jwtSecret, jwksURL string) (echo.MiddlewareFunc, error) {
	cfg := echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.SessionClaims)
		},
	}

	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
		}
		cfg.SigningKey = nil
		cfg.KeyFunc = jwks.Keyfunc
	}

	verify := echojwt.WithConfig(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(*services.SessionClaims)
			if !ok || claims.SessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			storedUserID, err := cacheSvc.GetSession(c.Request().Context(), claims.SessionID)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Session store unavailable")
			}
			if storedUserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
			}

			userID, err := strconv.ParseInt(storedUserID, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid session")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.SessionIDKey, claims.SessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		})
	}, nil
}
