package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// AdminController covers moderation and instructor approval.
type AdminController struct {
	Admin       *services.AdminService
	Reviews     *services.ReviewService
	Instructors *services.InstructorService
}

func NewAdminController(svc *services.Services) *AdminController {
	return &AdminController{
		Admin:       svc.Admin,
		Reviews:     svc.Reviews,
		Instructors: svc.Instructors,
	}
}

// GetStats godoc
// @Summary Platform totals
// @Tags admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/stats [get]
func (ac *AdminController) GetStats(c *fiber.Ctx) error {
	stats, err := ac.Admin.Stats(c.UserContext())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

func (ac *AdminController) GetUsers(c *fiber.Ctx) error {
	users, err := ac.Admin.Users(c.UserContext())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, users)
}

func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	userID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	if err := ac.Admin.DeleteUser(c.UserContext(), middleware.CurrentUserID(c), userID); err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "User deleted successfully", nil)
}

func (ac *AdminController) GetCourses(c *fiber.Ctx) error {
	courses, err := ac.Admin.Courses(c.UserContext())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (ac *AdminController) DeleteCourse(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	if err := ac.Admin.DeleteCourse(c.UserContext(), courseID); err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Course deleted successfully", nil)
}

func (ac *AdminController) GetReviews(c *fiber.Ctx) error {
	reviews, err := ac.Reviews.ListAllReviews(c.UserContext())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, reviews)
}

// DeleteReview godoc
// @Summary Remove a review
// @Description Deletes the review and returns the course's recomputed average
// @Tags admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/reviews/{courseId}/{reviewId} [delete]
func (ac *AdminController) DeleteReview(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	reviewID, ok, err := paramID(c, "reviewId")
	if !ok {
		return err
	}
	avg, err := ac.Reviews.DeleteReview(c.UserContext(), courseID, reviewID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Review removed successfully", fiber.Map{"avgRating": avg})
}

func (ac *AdminController) GetPendingInstructors(c *fiber.Ctx) error {
	users, err := ac.Instructors.ListPending(c.UserContext())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, users)
}

// ApproveInstructor godoc
// @Summary Approve an instructor
// @Description Approving an already approved instructor succeeds without changes
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/instructors/{id}/approve [put]
func (ac *AdminController) ApproveInstructor(c *fiber.Ctx) error {
	userID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	changed, err := ac.Instructors.Approve(c.UserContext(), userID)
	if err != nil {
		return utils.FromError(c, err)
	}
	message := "Instructor approved"
	if !changed {
		message = "Instructor already approved"
	}
	return utils.SuccessMessage(c, fiber.StatusOK, message, fiber.Map{"id": userID})
}

func (ac *AdminController) RejectInstructor(c *fiber.Ctx) error {
	userID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	changed, err := ac.Instructors.Reject(c.UserContext(), userID)
	if err != nil {
		return utils.FromError(c, err)
	}
	message := "Instructor rejected"
	if !changed {
		message = "Instructor already rejected"
	}
	return utils.SuccessMessage(c, fiber.StatusOK, message, fiber.Map{"id": userID})
}
