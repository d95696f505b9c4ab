package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is the single record of course membership. Both User.enrolledCourses and
// Course.students are derived from it.
type Enrollment struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	CourseID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"courseId"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolledAt"`
}

// CompletedModule is append-only; the primary key keeps one row per (user, course, module).
type CompletedModule struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	CourseID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"courseId"`
	ModuleID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"moduleId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

type CourseProgress struct {
	CourseID         uuid.UUID   `json:"courseId"`
	Progress         int         `json:"progress"`
	TotalModules     int         `json:"totalModules"`
	CompletedModules []uuid.UUID `json:"completedModules"`
}
