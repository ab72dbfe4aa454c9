package repository

import (
	"errors"

	"github.com/Tejas411/LearnPal/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	return &module, err
}

// CountIncompleteTasks counts the module's tasks that are still open.
func (r *ModuleRepository) CountIncompleteTasks(moduleID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Task{}).
		Where("module_id = ? AND is_completed = ?", moduleID, false).
		Count(&count).Error
	return count, err
}

// FindNext returns the module that follows orderIndex within the course,
// or (nil, nil) when the course has no further module.
func (r *ModuleRepository) FindNext(courseID uint, orderIndex int) (*model.Module, error) {
	var module model.Module
	err := r.DB.Where("course_id = ? AND order_index > ?", courseID, orderIndex).
		Order("order_index ASC").
		First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// CountIncomplete counts the course's modules without a completion mark.
func (r *ModuleRepository) CountIncomplete(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Module{}).
		Where("course_id = ? AND completed_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}
