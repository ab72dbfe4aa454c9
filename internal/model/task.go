package model

import (
	"time"
)

type TaskType string

const (
	TaskDocument   TaskType = "document"
	TaskVideo      TaskType = "video"
	TaskAssignment TaskType = "assignment"
)

// swagger:model Task
type Task struct {
	BaseModel
	ModuleID         uint       `gorm:"not null;index:idx_module_order,unique" json:"moduleId"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Type             TaskType   `gorm:"size:20;not null" json:"type"`
	ContentURL       string     `gorm:"type:text" json:"contentUrl"`
	ContentText      string     `gorm:"type:text" json:"contentText"`
	EstimatedMinutes int        `gorm:"default:0" json:"estimatedMinutes"`
	OrderIndex       int        `gorm:"not null;index:idx_module_order,unique" json:"orderIndex"`
	Deadline         *time.Time `gorm:"index" json:"deadline"`
	IsCompleted      bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt      *time.Time `json:"completedAt"`
}

func (Task) TableName() string {
	return "tasks"
}
