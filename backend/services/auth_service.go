package services

import (
	"context"
	"strings"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	store       Store
	tokens      TokenIssuer
	instructors *InstructorService
	logger      *zap.Logger
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type Profile struct {
	*models.User
	EnrolledCourses  []uuid.UUID              `json:"enrolledCourses"`
	CompletedModules []models.CompletedModule `json:"completedModules"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a student or instructor account. Instructors start pending.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "auth.Register"

	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleStudent && role != models.RoleInstructor {
		return nil, apperr.Validation(op, "Role must be student or instructor")
	}
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation(op, "Name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == models.RoleInstructor {
		user.InstructorStatus = models.StatusPtr(models.InstructorPending)
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return user, nil
}

// Login checks credentials, then the instructor gate, then issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "auth.Login"

	user, err := s.store.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.New(op, apperr.ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(op, apperr.ErrUnauthorized, "Invalid credentials")
	}
	if err := s.instructors.CheckLogin(user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.store.Enrollments.CourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.store.Progress.ListCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, EnrolledCourses: enrolled, CompletedModules: completed}, nil
}

// EnsureAdmin creates the bootstrap admin unless the email is already taken.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	const op = "auth.EnsureAdmin"

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.store.Users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !apperr.IsNotFound(err) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, apperr.Internal(op, err)
	}
	admin := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := s.store.Users.Create(ctx, admin); err != nil {
		return false, err
	}
	s.logger.Info("admin account created", zap.String("email", email))
	return true, nil
}
