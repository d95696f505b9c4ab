package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(svc *services.Services) *AuthController {
	return &AuthController{Auth: svc.Auth}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student instructor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	InstructorStatus *string `json:"instructorStatus,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		InstructorStatus: u.InstructorStatus,
	}
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a student or instructor account. Instructors wait for admin approval.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := ac.Auth.Register(c.UserContext(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return utils.FromError(c, err)
	}

	message := "Registered successfully"
	if user.IsPending() {
		message = "Instructor request submitted. Await admin approval."
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, message, toUserResponse(user))
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	res, err := ac.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": res.Token,
		"user":  toUserResponse(res.User),
	})
}
