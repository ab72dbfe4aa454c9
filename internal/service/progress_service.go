package service

import (
	"context"
	"errors"
	"time"

	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/repository"
	"github.com/Tejas411/LearnPal/internal/util"
	"github.com/Tejas411/LearnPal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserStats are the dashboard counters for one user.
// swagger:model UserStats
type UserStats struct {
	ActiveCourses  int `json:"activeCourses"`
	CompletedTasks int `json:"completedTasks"`
	TotalHours     int `json:"totalHours"`
	CurrentStreak  int `json:"currentStreak"`
}

// ProgressService applies completion writes and derives progress state.
type ProgressService struct {
	UserRepo     *repository.UserRepository
	TaskRepo     *repository.TaskRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	Courses      *CourseService
	DB           *gorm.DB
}

func NewProgressService(
	userRepo *repository.UserRepository,
	taskRepo *repository.TaskRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	courses *CourseService,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		UserRepo:     userRepo,
		TaskRepo:     taskRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Courses:      courses,
		DB:           db,
	}
}

// CompleteTask marks a task done for its owning user: the task row, a
// task progress event, the streak bump, and any module/course completion
// that falls out of it, all in one transaction. Completing a task twice
// is rejected before anything is written.
func (s *ProgressService) CompleteTask(ctx context.Context, taskID, userID uint) error {
	task, module, course, err := s.TaskRepo.FindOwner(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTaskNotFound
		}
		return err
	}

	if course.UserID != userID {
		return util.ErrPermissionDenied
	}
	if task.IsCompleted {
		return util.ErrTaskAlreadyComplete
	}

	now := time.Now()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"is_completed": true,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		moduleID := module.ID
		if err := tx.Create(&model.UserProgress{
			UserID:       userID,
			CourseID:     course.ID,
			ModuleID:     &moduleID,
			TaskID:       &task.ID,
			ProgressType: model.ProgressTask,
			IsCompleted:  true,
			CompletedAt:  &now,
		}).Error; err != nil {
			return err
		}

		if err := s.advanceModule(tx, userID, module, course, now); err != nil {
			return err
		}

		return s.bumpStreak(tx, userID, task.EstimatedMinutes, now)
	})
	if err != nil {
		return err
	}

	s.Courses.InvalidateCourse(ctx, course.ID)

	logger.Log.Info("task completed",
		zap.Uint("userId", userID),
		zap.Uint("taskId", taskID),
		zap.Uint("courseId", course.ID),
	)

	return nil
}

// advanceModule closes the module once its last task is done, unlocks the
// next module in order, and closes the course after the final module.
func (s *ProgressService) advanceModule(tx *gorm.DB, userID uint, module *model.Module, course *model.Course, now time.Time) error {
	open, err := repository.NewModuleRepository(tx).CountIncompleteTasks(module.ID)
	if err != nil {
		return err
	}
	if open > 0 {
		return nil
	}

	if err := tx.Model(&model.Module{}).
		Where("id = ?", module.ID).
		Update("completed_at", now).Error; err != nil {
		return err
	}

	moduleID := module.ID
	if err := tx.Create(&model.UserProgress{
		UserID:       userID,
		CourseID:     course.ID,
		ModuleID:     &moduleID,
		ProgressType: model.ProgressModule,
		IsCompleted:  true,
		CompletedAt:  &now,
	}).Error; err != nil {
		return err
	}

	modules := repository.NewModuleRepository(tx)

	next, err := modules.FindNext(course.ID, module.OrderIndex)
	if err != nil {
		return err
	}
	if next != nil {
		if err := tx.Model(&model.Module{}).
			Where("id = ?", next.ID).
			Update("is_locked", false).Error; err != nil {
			return err
		}
	}

	remaining, err := modules.CountIncomplete(course.ID)
	if err != nil || remaining > 0 {
		return err
	}

	// every module is done, so the course itself is finished
	if err := tx.Model(&model.Course{}).
		Where("id = ?", course.ID).
		Update("completed_at", now).Error; err != nil {
		return err
	}

	return tx.Create(&model.UserProgress{
		UserID:       userID,
		CourseID:     course.ID,
		ProgressType: model.ProgressCourse,
		IsCompleted:  true,
		CompletedAt:  &now,
	}).Error
}

func (s *ProgressService) bumpStreak(tx *gorm.DB, userID uint, taskMinutes int, now time.Time) error {
	var user model.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	newStreak := user.CurrentStreak + 1
	longest := user.LongestStreak
	if newStreak > longest {
		longest = newStreak
	}

	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":         newStreak,
			"longest_streak":         longest,
			"last_active_date":       now,
			"total_learning_minutes": gorm.Expr("total_learning_minutes + ?", taskMinutes),
		}).Error
}

// GetUserStats is a pure read over courses, progress events and the user
// row.
func (s *ProgressService) GetUserStats(userID uint) (*UserStats, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	activeCourses, err := s.CourseRepo.CountActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	completedTasks, err := s.ProgressRepo.CountCompletedTasks(userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		ActiveCourses:  int(activeCourses),
		CompletedTasks: int(completedTasks),
		TotalHours:     user.TotalLearningHours(),
		CurrentStreak:  user.CurrentStreak,
	}, nil
}

// GetCourseProgress lists the user's progress events for a course,
// newest first.
func (s *ProgressService) GetCourseProgress(userID, courseID uint) ([]model.UserProgress, error) {
	return s.ProgressRepo.FindByUserAndCourse(userID, courseID)
}
