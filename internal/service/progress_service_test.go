package service

import (
	"context"
	"testing"

	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProgressTest(t *testing.T) (*ProgressService, *CourseService, *model.User, *model.Course) {
	t.Helper()
	db := setupTestDB(t)
	courses := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus()})
	progress := newTestProgressService(db, courses)
	user := createTestUser(t, db, "progress@example.com")

	course, err := courses.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	require.NoError(t, err)
	return progress, courses, user, course
}

func TestCompleteTaskMarksTaskAndBumpsStreak(t *testing.T) {
	progress, courses, user, course := setupProgressTest(t)
	taskID := course.Modules[0].Tasks[0].ID

	require.NoError(t, progress.CompleteTask(context.Background(), taskID, user.ID))

	reloaded, err := courses.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	task := reloaded.Modules[0].Tasks[0]
	assert.True(t, task.IsCompleted)
	assert.NotNil(t, task.CompletedAt)

	var u model.User
	require.NoError(t, progress.DB.First(&u, user.ID).Error)
	assert.Equal(t, 1, u.CurrentStreak)
	assert.Equal(t, 1, u.LongestStreak)
	assert.NotNil(t, u.LastActiveDate)
	assert.Equal(t, 30, u.TotalLearningMinutes)
}

func TestCompleteTaskTwiceIsRejected(t *testing.T) {
	progress, _, user, course := setupProgressTest(t)
	taskID := course.Modules[0].Tasks[0].ID

	require.NoError(t, progress.CompleteTask(context.Background(), taskID, user.ID))
	err := progress.CompleteTask(context.Background(), taskID, user.ID)
	assert.ErrorIs(t, err, util.ErrTaskAlreadyComplete)

	// the duplicate attempt must not touch the streak
	var u model.User
	require.NoError(t, progress.DB.First(&u, user.ID).Error)
	assert.Equal(t, 1, u.CurrentStreak)
	assert.Equal(t, 30, u.TotalLearningMinutes)
}

func TestCompleteTaskOwnershipAndMissing(t *testing.T) {
	progress, _, _, course := setupProgressTest(t)
	stranger := createTestUser(t, progress.DB, "intruder@example.com")
	taskID := course.Modules[0].Tasks[0].ID

	err := progress.CompleteTask(context.Background(), taskID, stranger.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	err = progress.CompleteTask(context.Background(), 9999, stranger.ID)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestLongestStreakNeverShrinks(t *testing.T) {
	progress, _, user, course := setupProgressTest(t)

	// user once held a 10 day streak, currently broken
	require.NoError(t, progress.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"current_streak": 3, "longest_streak": 10}).Error)

	taskID := course.Modules[0].Tasks[0].ID
	require.NoError(t, progress.CompleteTask(context.Background(), taskID, user.ID))

	var u model.User
	require.NoError(t, progress.DB.First(&u, user.ID).Error)
	assert.Equal(t, 4, u.CurrentStreak)
	assert.Equal(t, 10, u.LongestStreak)
}

func TestModuleCompletionUnlocksNext(t *testing.T) {
	progress, courses, user, course := setupProgressTest(t)

	for _, task := range course.Modules[0].Tasks {
		require.NoError(t, progress.CompleteTask(context.Background(), task.ID, user.ID))
	}

	reloaded, err := courses.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.Modules[0].CompletedAt)
	assert.False(t, reloaded.Modules[1].IsLocked)
	assert.Nil(t, reloaded.CompletedAt)

	events, err := progress.GetCourseProgress(user.ID, course.ID)
	require.NoError(t, err)

	var moduleEvents int
	for _, e := range events {
		if e.ProgressType == model.ProgressModule {
			moduleEvents++
		}
	}
	assert.Equal(t, 1, moduleEvents)
}

func TestFinishingEveryModuleCompletesCourse(t *testing.T) {
	progress, courses, user, course := setupProgressTest(t)

	for _, mod := range course.Modules {
		for _, task := range mod.Tasks {
			require.NoError(t, progress.CompleteTask(context.Background(), task.ID, user.ID))
		}
	}

	reloaded, err := courses.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.CompletedAt)

	events, err := progress.GetCourseProgress(user.ID, course.ID)
	require.NoError(t, err)

	counts := map[model.ProgressType]int{}
	for _, e := range events {
		counts[e.ProgressType]++
	}
	assert.Equal(t, 4, counts[model.ProgressTask])
	assert.Equal(t, 2, counts[model.ProgressModule])
	assert.Equal(t, 1, counts[model.ProgressCourse])
}

func TestGetUserStats(t *testing.T) {
	progress, courses, user, course := setupProgressTest(t)

	_, err := courses.GenerateCourse(context.Background(), user.ID, "Rust", "", "")
	require.NoError(t, err)

	for _, task := range course.Modules[0].Tasks {
		require.NoError(t, progress.CompleteTask(context.Background(), task.ID, user.ID))
	}

	// push the accrued minutes over an hour boundary
	require.NoError(t, progress.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("total_learning_minutes", 150).Error)

	stats, err := progress.GetUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveCourses)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 2, stats.TotalHours)
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestGetUserStatsUnknownUser(t *testing.T) {
	progress, _, _, _ := setupProgressTest(t)

	_, err := progress.GetUserStats(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
