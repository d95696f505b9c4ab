package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Enrollments  *services.EnrollmentService
	Progress     *services.ProgressService
	Certificates *services.CertificateService
}

func NewProgressController(svc *services.Services) *ProgressController {
	return &ProgressController{
		Enrollments:  svc.Enrollments,
		Progress:     svc.Progress,
		Certificates: svc.Certificates,
	}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Enrolling twice succeeds without changes
// @Tags progress
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/enroll [post]
func (pc *ProgressController) Enroll(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	membership, err := pc.Enrollments.Enroll(c.UserContext(), middleware.CurrentUserID(c), courseID)
	if err != nil {
		return utils.FromError(c, err)
	}
	message := "Enrolled successfully"
	if membership.AlreadyEnrolled {
		message = "Already enrolled"
	}
	return utils.SuccessMessage(c, fiber.StatusOK, message, membership)
}

// CompleteModule godoc
// @Summary Mark a module completed
// @Tags progress
// @Produce json
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/modules/{moduleId}/complete [post]
func (pc *ProgressController) CompleteModule(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	moduleID, ok, err := paramID(c, "moduleId")
	if !ok {
		return err
	}

	completion, err := pc.Progress.CompleteModule(c.UserContext(), middleware.CurrentUserID(c), courseID, moduleID)
	if err != nil {
		return utils.FromError(c, err)
	}
	message := "Module marked completed"
	if completion.AlreadyCompleted {
		message = "Already completed"
	}
	return utils.SuccessMessage(c, fiber.StatusOK, message, completion)
}

// GetProgress godoc
// @Summary Progress in one course
// @Tags progress
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	progress, err := pc.Progress.GetProgress(c.UserContext(), middleware.CurrentUserID(c), courseID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// GetProgressOverview godoc
// @Summary Progress in every enrolled course
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /courses/student/progress [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	progress, err := pc.Progress.GetProgressForAllEnrolled(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// GetCertificate godoc
// @Summary Course completion certificate
// @Description Issued on request once every module is completed
// @Tags progress
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/certificate [get]
func (pc *ProgressController) GetCertificate(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	cert, err := pc.Certificates.Issue(c.UserContext(), middleware.CurrentUserID(c), courseID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, cert)
}
