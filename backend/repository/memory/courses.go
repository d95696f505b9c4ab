package memory

import (
	"context"
	"sort"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/google/uuid"
)

type CourseRepository struct {
	db *DB
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[course.InstructorID]; !ok {
		return apperr.NotFound("courses.Create", "Instructor not found")
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := r.db.now()
	course.CreatedAt, course.UpdatedAt = now, now

	stored := *course
	stored.Modules = nil
	r.db.courses[course.ID] = stored
	r.db.seq++
	r.db.courseSeq[course.ID] = r.db.seq

	for i := range course.Modules {
		m := &course.Modules[i]
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CourseID = course.ID
		m.SequenceOrder = i + 1
		m.CreatedAt, m.UpdatedAt = now, now
		r.db.modules[m.ID] = *m
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	course, ok := r.db.courseWithModules(id)
	if !ok {
		return nil, apperr.NotFound("courses.FindByID", "Course not found")
	}
	return &course, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := r.db.courseWithModules(id); ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

// List returns matching courses newest first.
func (r *CourseRepository) List(ctx context.Context, f services.CourseFilter) ([]models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	courses := make([]models.Course, 0)
	for id, c := range r.db.courses {
		if f.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *f.CategoryID) {
			continue
		}
		if f.InstructorID != nil && c.InstructorID != *f.InstructorID {
			continue
		}
		if f.Search != "" && !containsFold(c.Title, f.Search) {
			continue
		}
		course, _ := r.db.courseWithModules(id)
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool {
		return r.db.courseSeq[courses[i].ID] > r.db.courseSeq[courses[j].ID]
	})
	return courses, nil
}

// Update writes the editable fields; modules and avgRating are left alone.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.courses[course.ID]
	if !ok {
		return apperr.NotFound("courses.Update", "Course not found")
	}
	stored.Title = course.Title
	stored.Description = course.Description
	stored.Price = course.Price
	stored.Thumbnail = course.Thumbnail
	stored.CategoryID = course.CategoryID
	stored.UpdatedAt = r.db.now()
	r.db.courses[course.ID] = stored

	course.AvgRating = stored.AvgRating
	course.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[id]; !ok {
		return apperr.NotFound("courses.Delete", "Course not found")
	}
	r.db.deleteCourseRows(id)
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.courses)), nil
}

func (r *CourseRepository) AddModule(ctx context.Context, module *models.Module) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[module.CourseID]; !ok {
		return apperr.NotFound("courses.AddModule", "Course not found")
	}
	last := 0
	for _, m := range r.db.modules {
		if m.CourseID == module.CourseID && m.SequenceOrder > last {
			last = m.SequenceOrder
		}
	}
	if module.ID == uuid.Nil {
		module.ID = uuid.New()
	}
	now := r.db.now()
	module.SequenceOrder = last + 1
	module.CreatedAt, module.UpdatedAt = now, now
	r.db.modules[module.ID] = *module
	return nil
}

func (r *CourseRepository) UpdateModule(ctx context.Context, module *models.Module) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.modules[module.ID]
	if !ok || stored.CourseID != module.CourseID {
		return apperr.NotFound("courses.UpdateModule", "Module not found")
	}
	stored.Title = module.Title
	stored.VideoURL = module.VideoURL
	stored.PDFURL = module.PDFURL
	stored.UpdatedAt = r.db.now()
	r.db.modules[module.ID] = stored
	*module = stored
	return nil
}

// DeleteModule drops the module. Completion entries referring to it are kept.
func (r *CourseRepository) DeleteModule(ctx context.Context, courseID, moduleID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.modules[moduleID]
	if !ok || stored.CourseID != courseID {
		return apperr.NotFound("courses.DeleteModule", "Module not found")
	}
	delete(r.db.modules, moduleID)
	return nil
}
