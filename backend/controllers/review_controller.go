package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(svc *services.Services) *ReviewController {
	return &ReviewController{Reviews: svc.Reviews}
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// AddReview godoc
// @Summary Review a course
// @Description Enrolled students review a course once
// @Tags reviews
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param review body ReviewRequest true "Rating and comment"
// @Success 201 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/review [post]
func (rc *ReviewController) AddReview(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	var req ReviewRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	review, avg, err := rc.Reviews.AddReview(c.UserContext(), middleware.CurrentUserID(c), courseID, req.Rating, req.Comment)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Review added", fiber.Map{
		"review":    review,
		"avgRating": avg,
	})
}

// GetReviews godoc
// @Summary Course reviews
// @Tags reviews
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{courseId}/reviews [get]
func (rc *ReviewController) GetReviews(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	summary, err := rc.Reviews.GetReviews(c.UserContext(), courseID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, summary)
}
