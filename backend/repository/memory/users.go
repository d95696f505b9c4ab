package memory

import (
	"context"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
)

type UserRepository struct {
	db *DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == user.Email {
			return apperr.Conflict("users.Create", "User already exists")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.db.now()
	user.CreatedAt, user.UpdatedAt = now, now

	r.db.users[user.ID] = *user
	r.db.userOrder = append(r.db.userOrder, user.ID)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, apperr.NotFound("users.FindByID", "User not found")
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("users.FindByEmail", "User not found")
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.collect(func(models.User) bool { return true }), nil
}

func (r *UserRepository) ListInstructorsByStatus(ctx context.Context, status string) ([]models.User, error) {
	return r.collect(func(u models.User) bool {
		return u.IsInstructor() && u.Status() == status
	}), nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	users := r.collect(func(u models.User) bool { return role == "" || u.Role == role })
	return int64(len(users)), nil
}

func (r *UserRepository) SetInstructorStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return apperr.NotFound("users.SetInstructorStatus", "User not found")
	}
	u.InstructorStatus = models.StatusPtr(status)
	u.UpdatedAt = r.db.now()
	r.db.users[id] = u
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return nil, apperr.NotFound("users.Delete", "User not found")
	}
	for _, c := range r.db.courses {
		if c.InstructorID == id {
			return nil, apperr.Conflict("users.Delete", "User still owns courses")
		}
	}

	reviewed := make(map[uuid.UUID]struct{})
	r.db.reviews = filter(r.db.reviews, func(rv models.Review) bool {
		if rv.StudentID == id {
			reviewed[rv.CourseID] = struct{}{}
			return false
		}
		return true
	})
	r.db.enrollments = filter(r.db.enrollments, func(e models.Enrollment) bool {
		if e.UserID == id {
			delete(r.db.enrolled, enrollmentKey{e.UserID, e.CourseID})
			return false
		}
		return true
	})
	r.db.completed = filter(r.db.completed, func(c models.CompletedModule) bool { return c.UserID != id })
	courseIDs := make([]uuid.UUID, 0, len(reviewed))
	for courseID := range reviewed {
		r.db.recomputeAvg(courseID)
		courseIDs = append(courseIDs, courseID)
	}

	delete(r.db.users, id)
	r.db.userOrder = filter(r.db.userOrder, func(u uuid.UUID) bool { return u != id })
	return courseIDs, nil
}

func (r *UserRepository) collect(keep func(models.User) bool) []models.User {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]models.User, 0)
	for _, id := range r.db.userOrder {
		if u := r.db.users[id]; keep(u) {
			users = append(users, u)
		}
	}
	return users
}
