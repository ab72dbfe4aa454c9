package model

import (
	"time"
)

// Module is one ordered learning unit inside a course. Modules unlock
// front to back: index 0 is open at creation, each later module opens
// when every task of the preceding one is complete.
// swagger:model Module
type Module struct {
	BaseModel
	CourseID    uint       `gorm:"not null;index:idx_course_order,unique" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	OrderIndex  int        `gorm:"not null;index:idx_course_order,unique" json:"orderIndex"`
	IsLocked    bool       `gorm:"default:true" json:"isLocked"`
	CompletedAt *time.Time `json:"completedAt"`
	Tasks       []Task     `gorm:"foreignKey:ModuleID" json:"tasks,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
