package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/repository"
	"github.com/Tejas411/LearnPal/pkg/database"
	"github.com/Tejas411/LearnPal/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestCourseService(db *gorm.DB, gen SyllabusGenerator) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewTaskRepository(db),
		gen,
		db,
		nil,
	)
}

func newTestProgressService(db *gorm.DB, courses *CourseService) *ProgressService {
	return NewProgressService(
		repository.NewUserRepository(db),
		repository.NewTaskRepository(db),
		repository.NewCourseRepository(db),
		repository.NewProgressRepository(db),
		courses,
		db,
	)
}

// stubGenerator returns canned drafts without touching the network.
type stubGenerator struct {
	syllabus *GeneratedSyllabus
	content  string
	err      error
}

func (g *stubGenerator) GenerateSyllabus(ctx context.Context, topic, difficulty, timeCommitment string) (*GeneratedSyllabus, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.syllabus, nil
}

func (g *stubGenerator) GenerateTaskContent(ctx context.Context, taskTitle string, taskType model.TaskType, moduleContext string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "x", FirstName: "Test"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// twoModuleSyllabus is small enough to reason about in assertions: two
// modules with two tasks each.
func twoModuleSyllabus() *GeneratedSyllabus {
	return &GeneratedSyllabus{
		Title:          "Learn Go",
		Description:    "A practical Go course.",
		Difficulty:     model.Beginner,
		EstimatedHours: 20,
		Modules: []SyllabusModule{
			{
				Title:      "Basics",
				OrderIndex: 0,
				Tasks: []SyllabusTask{
					{Title: "Install Go", Type: model.TaskDocument, EstimatedMinutes: 30, OrderIndex: 0},
					{Title: "Tour of Go", Type: model.TaskVideo, EstimatedMinutes: 60, OrderIndex: 1},
				},
			},
			{
				Title:      "Concurrency",
				OrderIndex: 1,
				Tasks: []SyllabusTask{
					{Title: "Goroutines", Type: model.TaskDocument, EstimatedMinutes: 45, OrderIndex: 0},
					{Title: "Build a worker pool", Type: model.TaskAssignment, EstimatedMinutes: 90, OrderIndex: 1},
				},
			},
		},
	}
}
