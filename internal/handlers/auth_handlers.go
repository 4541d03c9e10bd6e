package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandlers gates the admin form behind a single shared password. This is a
// convenience gate for the site owner, not a security boundary.
type AuthHandlers struct {
	adminPassword string
	jwtSecret     []byte
	logger        *zap.Logger
}

func NewAuthHandlers(adminPassword string, jwtSecret []byte, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		logger:        logger,
	}
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges the shared admin password for a session token accepted by
// the admin routes.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required")
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		h.logger.Warn("admin login rejected", zap.String("ip", c.RealIP()))
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: signed, ExpiresAt: expiresAt})
}
