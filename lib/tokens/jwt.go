package tokens

import (
	"net/http"
	"strings"
	"time"

	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const AdminTokenSubject = "admin-token"

type jwtCustomClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`

	jwt.StandardClaims
}

// Middleware accepts an admin JWT, or the static admin token when one is configured,
// and stores the admin id under "AdminID".
func Middleware(secret []byte, adminToken string) echo.MiddlewareFunc {
	config := middleware.DefaultJWTConfig

	config.Claims = &jwtCustomClaims{}
	config.ContextKey = "AdminJWT"
	config.SigningKey = secret
	config.Skipper = func(c echo.Context) bool {
		if adminToken == "" {
			return false
		}
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		if strings.TrimPrefix(auth, "Bearer ") == adminToken {
			c.Set("AdminID", AdminTokenSubject)
			return true
		}
		return false
	}
	config.ErrorHandlerWithContext = func(err error, c echo.Context) error {
		c.Logger().Error(err)
		return echo.NewHTTPError(http.StatusUnauthorized, responses.BadAuthError)
	}
	config.SuccessHandler = func(c echo.Context) {
		token := c.Get("AdminJWT").(*jwt.Token)
		claims := token.Claims.(*jwtCustomClaims)
		c.Set("AdminID", claims.ID)
	}
	return middleware.JWTWithConfig(config)
}

// GenerateAccessToken : Generate Access Token
func GenerateAccessToken(secret []byte, expiryInSeconds int, u *models.AdminUser) (string, error) {
	claims := &jwtCustomClaims{
		ID:   u.ID,
		Role: u.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Second * time.Duration(expiryInSeconds)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return t, nil
}
