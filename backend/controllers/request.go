package controllers

import (
	"strings"

	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// bind parses the JSON body into dst and runs its validate tags. On failure the
// response is already written and ok is false.
func bind(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(dst); err != nil {
		return false, utils.ValidationError(c, utils.ValidationDetails(err))
	}
	return true, nil
}

// paramID reads a uuid path parameter. Malformed ids are answered with 400.
func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, false, utils.BadRequest(c, "Invalid "+name)
	}
	return id, true, nil
}
