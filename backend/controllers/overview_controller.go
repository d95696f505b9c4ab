package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// OverviewController serves the public catalog pages.
type OverviewController struct {
	Courses *services.CourseService
}

func NewOverviewController(svc *services.Services) *OverviewController {
	return &OverviewController{Courses: svc.Courses}
}

// SearchCourses godoc
// @Summary Browse the catalog
// @Description Lists courses newest first with instructor name, rating and review count
// @Tags overview
// @Produce json
// @Param category query string false "Category id or name"
// @Param search query string false "Search in course titles"
// @Success 200 {object} utils.SuccessResponse
// @Router /courses [get]
func (oc *OverviewController) SearchCourses(c *fiber.Ctx) error {
	courses, err := oc.Courses.List(c.UserContext(), c.Query("category"), c.Query("search"))
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses, fiber.Map{"total": len(courses)})
}

// GetInstructorProfile godoc
// @Summary Public instructor profile
// @Tags overview
// @Produce json
// @Param instructorId path string true "Instructor ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/instructor/{instructorId} [get]
func (oc *OverviewController) GetInstructorProfile(c *fiber.Ctx) error {
	instructorID, ok, err := paramID(c, "instructorId")
	if !ok {
		return err
	}
	profile, err := oc.Courses.InstructorProfile(c.UserContext(), instructorID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}
