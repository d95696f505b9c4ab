package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("testsecret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "instructor")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "instructor", claims.Role)
}

func TestJWTRejectsForeignSecretAndExpiry(t *testing.T) {
	token, err := NewJWTIssuer("other", time.Hour).Issue(uuid.New(), "student")
	require.NoError(t, err)

	_, err = NewJWTIssuer("testsecret", time.Hour).Parse(token)
	assert.Error(t, err)

	expired, err := NewJWTIssuer("testsecret", -time.Minute).Issue(uuid.New(), "student")
	require.NoError(t, err)
	_, err = NewJWTIssuer("testsecret", time.Hour).Parse(expired)
	assert.Error(t, err)
}

func TestExtractClaimsAcceptsBearerPrefix(t *testing.T) {
	issuer := NewJWTIssuer("testsecret", time.Hour)
	userID := uuid.New()
	token, err := issuer.Issue(userID, "student")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		claims, err := issuer.ExtractClaimsFromToken(c)
		if err != nil {
			return Unauthorized(c, "Unauthorized")
		}
		return c.SendString(claims.UserID.String())
	})

	for _, header := range []string{token, "Bearer " + token} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
