package repository

import (
	"errors"

	"github.com/Tejas411/LearnPal/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// FindActiveByUser returns the user's active courses, newest first.
func (r *CourseRepository) FindActiveByUser(userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// FindWithModules loads a course with its modules and tasks, both ordered
// ascending by order index. A missing course yields (nil, nil), not an error.
func (r *CourseRepository) FindWithModules(courseID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.order_index ASC")
		}).
		Preload("Modules.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.order_index ASC")
		}).
		First(&course, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) CountActiveByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}
