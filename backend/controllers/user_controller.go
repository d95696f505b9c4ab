package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(svc *services.Services) *UserController {
	return &UserController{Auth: svc.Auth}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the caller with enrolled course ids and completed modules
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	profile, err := uc.Auth.Profile(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}
