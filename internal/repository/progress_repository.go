package repository

import (
	"github.com/Tejas411/LearnPal/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(event *model.UserProgress) error {
	return r.DB.Create(event).Error
}

// FindByUserAndCourse returns the user's progress events for a course,
// newest first.
func (r *ProgressRepository) FindByUserAndCourse(userID, courseID uint) ([]model.UserProgress, error) {
	var events []model.UserProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// CountCompletedTasks counts the user's completed task events.
func (r *ProgressRepository) CountCompletedTasks(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND progress_type = ? AND is_completed = ?",
			userID, model.ProgressTask, true).
		Count(&count).Error
	return count, err
}
