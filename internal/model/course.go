package model

import (
	"time"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	switch Difficulty(d) {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// swagger:model Course
type Course struct {
	BaseModel
	UserID         uint       `gorm:"index;not null" json:"userId"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Topic          string     `gorm:"size:255;not null" json:"topic"`
	Difficulty     Difficulty `gorm:"size:20;not null;default:'beginner'" json:"difficulty"`
	EstimatedHours int        `gorm:"default:0" json:"estimatedHours"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	CompletedAt    *time.Time `json:"completedAt"`
	Modules        []Module   `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
