package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[int]error{
		fiber.StatusNotFound:            apperr.NotFound("op", "Course not found"),
		fiber.StatusUnauthorized:        apperr.New("op", apperr.ErrUnauthorized, "Invalid credentials"),
		fiber.StatusForbidden:           apperr.Forbidden("op", "Enroll to review"),
		fiber.StatusBadRequest:          apperr.Validation("op", "Rating must be between 1 and 5"),
		fiber.StatusConflict:            apperr.Conflict("op", "Already reviewed"),
		fiber.StatusInternalServerError: errors.New("driver: bad connection"),
	}
	for status, err := range cases {
		assert.Equal(t, status, StatusFor(err), err.Error())
	}
}

func TestFromErrorHidesInternalCause(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FromError(c, apperr.Internal("users.Create", errors.New("password=hunter2")))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "internal error", body.Message)
}
