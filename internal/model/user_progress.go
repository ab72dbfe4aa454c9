package model

import (
	"time"
)

type ProgressType string

const (
	ProgressCourse ProgressType = "course"
	ProgressModule ProgressType = "module"
	ProgressTask   ProgressType = "task"
)

// UserProgress is an append-only completion event at course, module or
// task granularity. Rows are never updated or deduplicated.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID       uint         `gorm:"index;not null" json:"userId"`
	CourseID     uint         `gorm:"index;not null" json:"courseId"`
	ModuleID     *uint        `gorm:"index" json:"moduleId"`
	TaskID       *uint        `gorm:"index" json:"taskId"`
	ProgressType ProgressType `gorm:"size:20;not null" json:"progressType"`
	IsCompleted  bool         `gorm:"default:false" json:"isCompleted"`
	CompletedAt  *time.Time   `json:"completedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
