package security

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/Morymirco/admin.zalama/lib/responses"
	"github.com/labstack/echo/v4"
)

const LengoSignatureHeader = "X-Lengo-Signature"

// Sign returns hex(hmac_sha256(secret, body)).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func ValidSignature(secret string, body []byte, signature string) bool {
	expected := Sign(secret, body)
	signature = strings.ToLower(strings.TrimSpace(signature))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignatureMiddleware rejects requests whose body was not signed with secret.
// An empty secret disables the check. GET requests are never verified.
func SignatureMiddleware(secret, header string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" || c.Request().Method == http.MethodGet {
				return next(c)
			}
			body, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, responses.BadArgumentsError)
			}
			// the handler binds the same body again
			c.Request().Body = io.NopCloser(bytes.NewReader(body))

			if !ValidSignature(secret, body, c.Request().Header.Get(header)) {
				c.Logger().Warnf("invalid %s header from %s", header, c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, responses.InvalidSignatureError)
			}
			return next(c)
		}
	}
}
