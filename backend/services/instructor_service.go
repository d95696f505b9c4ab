package services

import (
	"context"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InstructorService owns the pending/approved/rejected lifecycle. Transitions are
// unconditional admin setters; any state may move to approved or rejected.
type InstructorService struct {
	store  Store
	logger *zap.Logger
}

// Approve reports false when the account was already approved.
func (s *InstructorService) Approve(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.setStatus(ctx, "instructors.Approve", userID, models.InstructorApproved)
}

// Reject reports false when the account was already rejected.
func (s *InstructorService) Reject(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.setStatus(ctx, "instructors.Reject", userID, models.InstructorRejected)
}

func (s *InstructorService) ListPending(ctx context.Context) ([]models.User, error) {
	return s.store.Users.ListInstructorsByStatus(ctx, models.InstructorPending)
}

// CheckLogin is the login gate: only approved instructors may authenticate.
func (s *InstructorService) CheckLogin(user *models.User) error {
	const op = "instructors.CheckLogin"

	switch {
	case !user.IsInstructor(), user.IsApproved():
		return nil
	case user.IsRejected():
		return apperr.Forbidden(op, "Instructor account was rejected by admin")
	default:
		return apperr.Forbidden(op, "Instructor account pending admin approval")
	}
}

func (s *InstructorService) setStatus(ctx context.Context, op string, userID uuid.UUID, status string) (bool, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !user.IsInstructor() {
		return false, apperr.Validation(op, "User is not an instructor")
	}
	if user.Status() == status {
		return false, nil
	}

	if err := s.store.Users.SetInstructorStatus(ctx, userID, status); err != nil {
		return false, err
	}
	s.logger.Info("instructor status changed",
		zap.String("user_id", userID.String()),
		zap.String("from", user.Status()),
		zap.String("to", status),
	)
	return true, nil
}
