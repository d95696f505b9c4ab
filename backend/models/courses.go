package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	Price        float64    `gorm:"not null;default:0" json:"price"`
	Thumbnail    string     `json:"thumbnail"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index" json:"category,omitempty"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"instructor"`
	AvgRating    float64    `gorm:"not null;default:0" json:"avgRating"` // mean of reviews.rating, 0 when none
	Modules      []Module   `gorm:"foreignKey:CourseID" json:"modules"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasModule reports whether moduleID is one of the course's current modules.
func (c *Course) HasModule(moduleID uuid.UUID) bool {
	for _, m := range c.Modules {
		if m.ID == moduleID {
			return true
		}
	}
	return false
}

type Module struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;index" json:"courseId"`
	Title         string    `gorm:"not null" json:"title"`
	VideoURL      string    `json:"videoUrl"`
	PDFURL        string    `gorm:"column:pdf_url" json:"pdfUrl"`
	SequenceOrder int       `gorm:"not null" json:"sequenceOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
