package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Courses     *services.CourseService
	Enrollments *services.EnrollmentService
}

func NewCoursesController(svc *services.Services) *CoursesController {
	return &CoursesController{Courses: svc.Courses, Enrollments: svc.Enrollments}
}

type ModuleRequest struct {
	Title    string `json:"title" validate:"required"`
	VideoURL string `json:"videoUrl" validate:"omitempty,url"`
	PDFURL   string `json:"pdfUrl" validate:"omitempty,url"`
}

type CreateCourseRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       float64         `json:"price" validate:"gte=0"`
	Thumbnail   string          `json:"thumbnail"`
	Category    string          `json:"category"`
	Modules     []ModuleRequest `json:"modules" validate:"dive"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Thumbnail   *string  `json:"thumbnail"`
	Category    *string  `json:"category"`
}

type UpdateModuleRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1"`
	VideoURL *string `json:"videoUrl" validate:"omitempty,url"`
	PDFURL   *string `json:"pdfUrl" validate:"omitempty,url"`
}

func (r ModuleRequest) input() services.ModuleInput {
	return services.ModuleInput{Title: r.Title, VideoURL: r.VideoURL, PDFURL: r.PDFURL}
}

// GetCourse godoc
// @Summary Get course details
// @Description Returns the course with its modules and whether the caller is enrolled
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	detail, err := cc.Courses.Get(c.UserContext(), middleware.CurrentUserID(c), courseID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, detail)
}

// CreateCourse godoc
// @Summary Create a course
// @Description Approved instructors create a course, optionally with its first modules
// @Tags courses
// @Accept json
// @Produce json
// @Param course body CreateCourseRequest true "Course data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	in := services.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
	}
	for _, m := range req.Modules {
		in.Modules = append(in.Modules, m.input())
	}

	course, err := cc.Courses.Create(c.UserContext(), middleware.CurrentUserID(c), in)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Course created", course)
}

// UpdateCourse godoc
// @Summary Edit a course
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param course body UpdateCourseRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	var req UpdateCourseRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	course, err := cc.Courses.Update(c.UserContext(), middleware.CurrentUserID(c), courseID, services.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
	})
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Course updated", course)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	if err := cc.Courses.Delete(c.UserContext(), middleware.CurrentUserID(c), courseID); err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Course deleted successfully", nil)
}

// AddModule godoc
// @Summary Append a module
// @Description Adds a module after the course's last one
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param module body ModuleRequest true "Module data"
// @Success 201 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/modules [post]
func (cc *CoursesController) AddModule(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	var req ModuleRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	module, err := cc.Courses.AddModule(c.UserContext(), middleware.CurrentUserID(c), courseID, req.input())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Module added", module)
}

func (cc *CoursesController) UpdateModule(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	moduleID, ok, err := paramID(c, "moduleId")
	if !ok {
		return err
	}
	var req UpdateModuleRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	module, err := cc.Courses.UpdateModule(c.UserContext(), middleware.CurrentUserID(c), courseID, moduleID, services.ModuleUpdate{
		Title:    req.Title,
		VideoURL: req.VideoURL,
		PDFURL:   req.PDFURL,
	})
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Module updated", module)
}

func (cc *CoursesController) DeleteModule(c *fiber.Ctx) error {
	courseID, ok, err := paramID(c, "courseId")
	if !ok {
		return err
	}
	moduleID, ok, err := paramID(c, "moduleId")
	if !ok {
		return err
	}

	modules, err := cc.Courses.DeleteModule(c.UserContext(), middleware.CurrentUserID(c), courseID, moduleID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Module deleted", modules)
}

// GetMyCourses godoc
// @Summary Instructor's own courses
// @Tags courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /courses/instructor/my-courses [get]
func (cc *CoursesController) GetMyCourses(c *fiber.Ctx) error {
	courses, err := cc.Courses.InstructorCourses(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// Получаем курсы, на которые записан студент
func (cc *CoursesController) GetEnrolledCourses(c *fiber.Ctx) error {
	courses, err := cc.Enrollments.EnrolledCourses(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}
