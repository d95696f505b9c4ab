package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Instructor account lifecycle. Only meaningful while Role is RoleInstructor.
const (
	InstructorPending  = "pending"
	InstructorApproved = "approved"
	InstructorRejected = "rejected"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Role             string    `gorm:"not null;default:student" json:"role"` // student, instructor, admin
	InstructorStatus *string   `json:"instructorStatus,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

func (u *User) Status() string {
	if u.InstructorStatus == nil {
		return ""
	}
	return *u.InstructorStatus
}

func (u *User) IsPending() bool {
	return u.IsInstructor() && u.Status() == InstructorPending
}

func (u *User) IsApproved() bool {
	return u.IsInstructor() && u.Status() == InstructorApproved
}

func (u *User) IsRejected() bool {
	return u.IsInstructor() && u.Status() == InstructorRejected
}

// StatusPtr is a helper for assigning InstructorStatus.
func StatusPtr(s string) *string {
	return &s
}
