package service

import (
	"context"
	"testing"
	"time"

	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCoursePersistsSyllabus(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus()})
	user := createTestUser(t, db, "gen@example.com")

	course, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "beginner", "")
	require.NoError(t, err)
	require.NotNil(t, course)

	assert.Equal(t, "Learn Go", course.Title)
	assert.Equal(t, "Go", course.Topic)
	assert.Equal(t, user.ID, course.UserID)
	assert.True(t, course.IsActive)
	require.Len(t, course.Modules, 2)
	assert.Len(t, course.Modules[0].Tasks, 2)
	assert.Len(t, course.Modules[1].Tasks, 2)
}

func TestGenerateCourseUnlocksOnlyFirstModule(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus()})
	user := createTestUser(t, db, "locks@example.com")

	course, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	require.NoError(t, err)

	assert.False(t, course.Modules[0].IsLocked)
	assert.True(t, course.Modules[1].IsLocked)
}

func TestGenerateCourseStaggersDeadlines(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus()})
	user := createTestUser(t, db, "deadlines@example.com")

	before := time.Now()
	course, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	require.NoError(t, err)

	first := course.Modules[0].Tasks[0]
	second := course.Modules[0].Tasks[1]
	require.NotNil(t, first.Deadline)
	require.NotNil(t, second.Deadline)

	// task at position n is due n+1 days out
	assert.WithinDuration(t, before.Add(24*time.Hour), *first.Deadline, time.Minute)
	assert.WithinDuration(t, before.Add(48*time.Hour), *second.Deadline, time.Minute)
}

func TestGenerateCourseOrdersModulesAndTasks(t *testing.T) {
	db := setupTestDB(t)

	// feed modules out of order; the read path must sort them
	syllabus := twoModuleSyllabus()
	syllabus.Modules[0], syllabus.Modules[1] = syllabus.Modules[1], syllabus.Modules[0]

	svc := newTestCourseService(db, &stubGenerator{syllabus: syllabus})
	user := createTestUser(t, db, "order@example.com")

	course, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	require.NoError(t, err)

	assert.Equal(t, 0, course.Modules[0].OrderIndex)
	assert.Equal(t, "Basics", course.Modules[0].Title)
	assert.Equal(t, 1, course.Modules[1].OrderIndex)
	assert.Equal(t, 0, course.Modules[0].Tasks[0].OrderIndex)
	assert.Equal(t, 1, course.Modules[0].Tasks[1].OrderIndex)
}

func TestGenerateCourseGeneratorFailureWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{err: util.ErrSyllabusGeneration})
	user := createTestUser(t, db, "fail@example.com")

	_, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	assert.ErrorIs(t, err, util.ErrSyllabusGeneration)

	var count int64
	require.NoError(t, db.Model(&model.Course{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetCourseMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{})

	course, err := svc.GetCourse(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, course)
}

func TestGetUserCoursesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus()})
	user := createTestUser(t, db, "list@example.com")

	first, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	require.NoError(t, err)
	second, err := svc.GenerateCourse(context.Background(), user.ID, "Rust", "", "")
	require.NoError(t, err)

	// an inactive course is not listed
	require.NoError(t, db.Model(&model.Course{}).
		Where("id = ?", first.ID).
		Update("is_active", false).Error)

	courses, err := svc.GetUserCourses(user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, second.ID, courses[0].ID)
}

func TestGenerateTaskContentChecksOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus(), content: "elaborated"})
	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")

	course, err := svc.GenerateCourse(context.Background(), owner.ID, "Go", "", "")
	require.NoError(t, err)
	taskID := course.Modules[0].Tasks[0].ID

	content, err := svc.GenerateTaskContent(context.Background(), taskID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "elaborated", content)

	_, err = svc.GenerateTaskContent(context.Background(), taskID, stranger.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.GenerateTaskContent(context.Background(), 9999, owner.ID)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestGetTodayTasksScopedToUserAndDeadline(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCourseService(db, &stubGenerator{syllabus: twoModuleSyllabus()})
	user := createTestUser(t, db, "today@example.com")
	other := createTestUser(t, db, "other@example.com")

	course, err := svc.GenerateCourse(context.Background(), user.ID, "Go", "", "")
	require.NoError(t, err)
	otherCourse, err := svc.GenerateCourse(context.Background(), other.ID, "Go", "", "")
	require.NoError(t, err)

	// fresh deadlines start tomorrow, so nothing is due yet
	tasks, err := svc.GetTodayTasks(user.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// pull two of the user's tasks (and one of the other user's) into today
	overdue := time.Now().Add(-2 * time.Hour)
	dueToday := time.Now().Add(-time.Minute)
	dueTaskID := course.Modules[0].Tasks[0].ID
	overdueTaskID := course.Modules[0].Tasks[1].ID
	require.NoError(t, db.Model(&model.Task{}).
		Where("id = ?", dueTaskID).Update("deadline", dueToday).Error)
	require.NoError(t, db.Model(&model.Task{}).
		Where("id = ?", overdueTaskID).Update("deadline", overdue).Error)
	require.NoError(t, db.Model(&model.Task{}).
		Where("id = ?", otherCourse.Modules[0].Tasks[0].ID).Update("deadline", overdue).Error)

	tasks, err = svc.GetTodayTasks(user.ID)
	require.NoError(t, err)

	// only this user's due tasks, soonest deadline first
	require.Len(t, tasks, 2)
	assert.Equal(t, overdueTaskID, tasks[0].ID)
	assert.Equal(t, dueTaskID, tasks[1].ID)

	// completed tasks drop out
	require.NoError(t, db.Model(&model.Task{}).
		Where("id = ?", overdueTaskID).Update("is_completed", true).Error)
	tasks, err = svc.GetTodayTasks(user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, dueTaskID, tasks[0].ID)
}
