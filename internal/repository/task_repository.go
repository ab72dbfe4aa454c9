package repository

import (
	"time"

	"github.com/Tejas411/LearnPal/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) FindByID(id uint) (*model.Task, error) {
	var task model.Task
	err := r.DB.First(&task, id).Error
	return &task, err
}

// FindDueTasks returns the user's incomplete tasks due before the end of
// the given day (or already overdue), soonest deadline first.
func (r *TaskRepository) FindDueTasks(userID uint, day time.Time) ([]model.Task, error) {
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

	var tasks []model.Task
	err := r.DB.
		Joins("JOIN modules ON modules.id = tasks.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ? AND tasks.is_completed = ? AND tasks.deadline <= ?",
			userID, false, endOfDay).
		Order("tasks.deadline ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindOwner resolves the task's module and course in one pass. Used for
// the ownership check before a completion write.
func (r *TaskRepository) FindOwner(taskID uint) (*model.Task, *model.Module, *model.Course, error) {
	var task model.Task
	if err := r.DB.First(&task, taskID).Error; err != nil {
		return nil, nil, nil, err
	}

	var module model.Module
	if err := r.DB.First(&module, task.ModuleID).Error; err != nil {
		return nil, nil, nil, err
	}

	var course model.Course
	if err := r.DB.First(&course, module.CourseID).Error; err != nil {
		return nil, nil, nil, err
	}

	return &task, &module, &course, nil
}
