package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/repository"
	"github.com/Tejas411/LearnPal/internal/util"
	"github.com/Tejas411/LearnPal/pkg/logger"
	"github.com/Tejas411/LearnPal/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const courseCacheTTL = 10 * time.Minute

func courseCacheKey(courseID uint) string {
	return fmt.Sprintf("course:view:%d", courseID)
}

// CourseService owns the generation/ingestion workflow and the course
// read paths.
type CourseService struct {
	CourseRepo *repository.CourseRepository
	TaskRepo   *repository.TaskRepository
	Generator  SyllabusGenerator
	DB         *gorm.DB
	Redis      *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	taskRepo *repository.TaskRepository,
	generator SyllabusGenerator,
	db *gorm.DB,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		TaskRepo:   taskRepo,
		Generator:  generator,
		DB:         db,
		Redis:      rdb,
	}
}

// GenerateCourse asks the generator for a syllabus and persists it as one
// unit of work: the course, its modules in syllabus order, and each
// module's tasks with deadlines staggered by task position. Either the
// whole course lands or nothing does.
func (s *CourseService) GenerateCourse(ctx context.Context, userID uint, topic, difficulty, timeCommitment string) (*model.Course, error) {
	syllabus, err := s.Generator.GenerateSyllabus(ctx, topic, difficulty, timeCommitment)
	if err != nil {
		monitoring.SyllabusGenerations.WithLabelValues("error").Inc()
		return nil, err
	}
	monitoring.SyllabusGenerations.WithLabelValues("ok").Inc()

	course, err := s.ingest(userID, syllabus, topic)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("course generated",
		zap.Uint("userId", userID),
		zap.Uint("courseId", course.ID),
		zap.String("topic", topic),
		zap.Int("modules", len(syllabus.Modules)),
	)

	return s.GetCourse(ctx, course.ID)
}

func (s *CourseService) ingest(userID uint, syllabus *GeneratedSyllabus, topic string) (*model.Course, error) {
	now := time.Now()

	course := &model.Course{
		UserID:         userID,
		Title:          syllabus.Title,
		Description:    syllabus.Description,
		Topic:          topic,
		Difficulty:     syllabus.Difficulty,
		EstimatedHours: syllabus.EstimatedHours,
		IsActive:       true,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		for _, draft := range syllabus.Modules {
			module := &model.Module{
				CourseID:    course.ID,
				Title:       draft.Title,
				Description: draft.Description,
				OrderIndex:  draft.OrderIndex,
				// the first module is open from the start
				IsLocked: draft.OrderIndex != 0,
			}
			if err := tx.Create(module).Error; err != nil {
				return err
			}

			for _, taskDraft := range draft.Tasks {
				deadline := now.Add(time.Duration(taskDraft.OrderIndex+1) * 24 * time.Hour)
				task := &model.Task{
					ModuleID:         module.ID,
					Title:            taskDraft.Title,
					Description:      taskDraft.Description,
					Type:             taskDraft.Type,
					ContentURL:       taskDraft.ContentURL,
					ContentText:      taskDraft.ContentText,
					EstimatedMinutes: taskDraft.EstimatedMinutes,
					OrderIndex:       taskDraft.OrderIndex,
					Deadline:         &deadline,
				}
				if err := tx.Create(task).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return course, nil
}

// GetCourse returns the fully materialized course, or (nil, nil) when the
// id does not exist. The view is cached briefly in redis.
func (s *CourseService) GetCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, courseCacheKey(courseID)).Result()
		if err == nil {
			var course model.Course
			if err := json.Unmarshal([]byte(cached), &course); err == nil {
				return &course, nil
			}
		}
	}

	course, err := s.CourseRepo.FindWithModules(courseID)
	if err != nil || course == nil {
		return course, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(course); err == nil {
			if err := s.Redis.Set(ctx, courseCacheKey(courseID), payload, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("course cache write failed", zap.Error(err))
			}
		}
	}

	return course, nil
}

// InvalidateCourse drops the cached view after a write touches the course.
func (s *CourseService) InvalidateCourse(ctx context.Context, courseID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, courseCacheKey(courseID)).Err(); err != nil {
		logger.Log.Warn("course cache invalidation failed", zap.Error(err))
	}
}

func (s *CourseService) GetUserCourses(userID uint) ([]model.Course, error) {
	return s.CourseRepo.FindActiveByUser(userID)
}

func (s *CourseService) GetTodayTasks(userID uint) ([]model.Task, error) {
	return s.TaskRepo.FindDueTasks(userID, time.Now())
}

// GenerateTaskContent produces an AI elaboration for an existing task,
// scoped to its owner.
func (s *CourseService) GenerateTaskContent(ctx context.Context, taskID, userID uint) (string, error) {
	task, module, course, err := s.TaskRepo.FindOwner(taskID)
	if err != nil {
		return "", util.ErrTaskNotFound
	}
	if course.UserID != userID {
		return "", util.ErrPermissionDenied
	}

	return s.Generator.GenerateTaskContent(ctx, task.Title, task.Type, module.Title)
}
