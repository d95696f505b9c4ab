package services

import (
	"context"
	"strings"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourseService struct {
	store      Store
	categories *CategoryService
	reviews    *ReviewService
	logger     *zap.Logger
}

type ModuleInput struct {
	Title    string
	VideoURL string
	PDFURL   string
}

type CourseInput struct {
	Title       string
	Description string
	Price       float64
	Thumbnail   string
	Category    string // id or name
	Modules     []ModuleInput
}

// CourseUpdate leaves nil fields unchanged.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Thumbnail   *string
	Category    *string
}

type ModuleUpdate struct {
	Title    *string
	VideoURL *string
	PDFURL   *string
}

// CourseSummary is a course decorated for listings.
type CourseSummary struct {
	models.Course
	InstructorName string `json:"instructorName"`
	CategoryName   string `json:"categoryName,omitempty"`
	ReviewCount    int64  `json:"reviewCount"`
	StudentCount   int64  `json:"studentCount"`
}

type CourseDetail struct {
	CourseSummary
	IsEnrolled bool `json:"isEnrolled"`
}

type InstructorProfile struct {
	Instructor    *models.User    `json:"instructor"`
	Courses       []CourseSummary `json:"courses"`
	TotalStudents int64           `json:"totalStudents"`
}

// List returns the catalog newest first, optionally narrowed to a category given
// by id or name and a title search. An unknown category yields an empty catalog.
func (s *CourseService) List(ctx context.Context, category, search string) ([]CourseSummary, error) {
	filter := CourseFilter{Search: strings.TrimSpace(search)}
	if category != "" {
		id, err := s.categories.Resolve(ctx, category)
		if err != nil {
			if apperr.KindOf(err) == apperr.ErrValidation {
				return []CourseSummary{}, nil
			}
			return nil, err
		}
		filter.CategoryID = id
	}

	courses, err := s.store.Courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, courses)
}

func (s *CourseService) Get(ctx context.Context, userID, courseID uuid.UUID) (*CourseDetail, error) {
	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(ctx, []models.Course{*course})
	if err != nil {
		return nil, err
	}
	enrolled, err := s.store.Enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{CourseSummary: summaries[0], IsEnrolled: enrolled}, nil
}

func (s *CourseService) Create(ctx context.Context, instructorID uuid.UUID, in CourseInput) (*models.Course, error) {
	const op = "courses.Create"

	instructor, err := s.store.Users.FindByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if !instructor.IsApproved() {
		return nil, apperr.Forbidden(op, "Only approved instructors can create courses")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation(op, "Title is required")
	}
	if in.Price < 0 {
		return nil, apperr.Validation(op, "Price cannot be negative")
	}
	categoryID, err := s.categories.Resolve(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Price:        in.Price,
		Thumbnail:    in.Thumbnail,
		CategoryID:   categoryID,
		InstructorID: instructorID,
	}
	for _, m := range in.Modules {
		if strings.TrimSpace(m.Title) == "" {
			return nil, apperr.Validation(op, "Module title is required")
		}
		course.Modules = append(course.Modules, models.Module{Title: m.Title, VideoURL: m.VideoURL, PDFURL: m.PDFURL})
	}

	if err := s.store.Courses.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("course created",
		zap.String("course_id", course.ID.String()),
		zap.String("instructor_id", instructorID.String()),
		zap.Int("modules", len(course.Modules)),
	)
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, instructorID, courseID uuid.UUID, in CourseUpdate) (*models.Course, error) {
	const op = "courses.Update"

	course, err := s.owned(ctx, op, instructorID, courseID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation(op, "Title is required")
		}
		course.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperr.Validation(op, "Price cannot be negative")
		}
		course.Price = *in.Price
	}
	if in.Thumbnail != nil {
		course.Thumbnail = *in.Thumbnail
	}
	if in.Category != nil {
		categoryID, err := s.categories.Resolve(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		course.CategoryID = categoryID
	}

	if err := s.store.Courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, instructorID, courseID uuid.UUID) error {
	if _, err := s.owned(ctx, "courses.Delete", instructorID, courseID); err != nil {
		return err
	}
	if err := s.store.Courses.Delete(ctx, courseID); err != nil {
		return err
	}
	s.reviews.forget(ctx, courseID)
	s.logger.Info("course deleted", zap.String("course_id", courseID.String()))
	return nil
}

func (s *CourseService) AddModule(ctx context.Context, instructorID, courseID uuid.UUID, in ModuleInput) (*models.Module, error) {
	const op = "courses.AddModule"

	if _, err := s.owned(ctx, op, instructorID, courseID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation(op, "Module title is required")
	}
	module := &models.Module{
		CourseID: courseID,
		Title:    strings.TrimSpace(in.Title),
		VideoURL: in.VideoURL,
		PDFURL:   in.PDFURL,
	}
	if err := s.store.Courses.AddModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CourseService) UpdateModule(ctx context.Context, instructorID, courseID, moduleID uuid.UUID, in ModuleUpdate) (*models.Module, error) {
	const op = "courses.UpdateModule"

	course, err := s.owned(ctx, op, instructorID, courseID)
	if err != nil {
		return nil, err
	}
	var module *models.Module
	for i := range course.Modules {
		if course.Modules[i].ID == moduleID {
			module = &course.Modules[i]
		}
	}
	if module == nil {
		return nil, apperr.NotFound(op, "Module not found")
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation(op, "Module title is required")
		}
		module.Title = strings.TrimSpace(*in.Title)
	}
	if in.VideoURL != nil {
		module.VideoURL = *in.VideoURL
	}
	if in.PDFURL != nil {
		module.PDFURL = *in.PDFURL
	}

	if err := s.store.Courses.UpdateModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule returns the remaining modules. Completion records are kept, they
// just stop counting toward progress.
func (s *CourseService) DeleteModule(ctx context.Context, instructorID, courseID, moduleID uuid.UUID) ([]models.Module, error) {
	const op = "courses.DeleteModule"

	if _, err := s.owned(ctx, op, instructorID, courseID); err != nil {
		return nil, err
	}
	if err := s.store.Courses.DeleteModule(ctx, courseID, moduleID); err != nil {
		return nil, err
	}
	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return course.Modules, nil
}

// InstructorCourses lists the instructor's own courses with student counts.
func (s *CourseService) InstructorCourses(ctx context.Context, instructorID uuid.UUID) ([]CourseSummary, error) {
	courses, err := s.store.Courses.List(ctx, CourseFilter{InstructorID: &instructorID})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, courses)
}

func (s *CourseService) InstructorProfile(ctx context.Context, instructorID uuid.UUID) (*InstructorProfile, error) {
	const op = "courses.InstructorProfile"

	instructor, err := s.store.Users.FindByID(ctx, instructorID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(op, "Instructor not found")
		}
		return nil, err
	}
	if !instructor.IsInstructor() {
		return nil, apperr.NotFound(op, "Instructor not found")
	}

	courses, err := s.InstructorCourses(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	profile := &InstructorProfile{Instructor: instructor, Courses: courses}
	for _, c := range courses {
		profile.TotalStudents += c.StudentCount
	}
	return profile, nil
}

// owned loads a course the caller owns and may still manage.
func (s *CourseService) owned(ctx context.Context, op string, instructorID, courseID uuid.UUID) (*models.Course, error) {
	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperr.Forbidden(op, "Not the course owner")
	}
	// Approval is read from storage, not from the token.
	owner, err := s.store.Users.FindByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if !owner.IsApproved() {
		return nil, apperr.Forbidden(op, "Only approved instructors can manage courses")
	}
	return course, nil
}

func (s *CourseService) summarize(ctx context.Context, courses []models.Course) ([]CourseSummary, error) {
	summaries := make([]CourseSummary, 0, len(courses))
	if len(courses) == 0 {
		return summaries, nil
	}

	ids := uniqueIDs(courses, func(c models.Course) uuid.UUID { return c.ID })
	instructorIDs := uniqueIDs(courses, func(c models.Course) uuid.UUID { return c.InstructorID })

	instructors, err := s.store.Users.FindByIDs(ctx, instructorIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(instructors))
	for _, u := range instructors {
		names[u.ID] = u.Name
	}

	categories, err := s.store.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	reviews, err := s.store.Reviews.CountByCourse(ctx, ids)
	if err != nil {
		return nil, err
	}
	students, err := s.store.Enrollments.CountStudents(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range courses {
		summary := CourseSummary{
			Course:         c,
			InstructorName: names[c.InstructorID],
			ReviewCount:    reviews[c.ID],
			StudentCount:   students[c.ID],
		}
		if c.CategoryID != nil {
			summary.CategoryName = categoryNames[*c.CategoryID]
		}
		if summary.Modules == nil {
			summary.Modules = []models.Module{}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
