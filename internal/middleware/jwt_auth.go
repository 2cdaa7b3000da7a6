package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/models"
)

// viewerIDKey is the echo context key the authenticated user ID is
// stored under.
const viewerIDKey = "viewerID"

// JWTAuthMiddleware checks for a valid JWT and stores the authenticated
// user ID on the context. Token issuance belongs to the identity
// provider; this layer only resolves an already-authenticated viewer.
func JWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(JWTSecret()), nil
			})

			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token carries no user identity")
			}

			c.Set(viewerIDKey, claims.UserID)

			return next(c)
		}
	}
}

// ViewerID returns the authenticated user ID stored by
// JWTAuthMiddleware, or 0 when the request is unauthenticated.
func ViewerID(c echo.Context) uint {
	id, _ := c.Get(viewerIDKey).(uint)
	return id
}

// JWTSecret returns the HMAC secret shared with the identity provider
func JWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "supersecretjwtkey" // Must match the secret used for signing
}
