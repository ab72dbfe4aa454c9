package controller

import (
	"errors"
	"strconv"

	"github.com/Tejas411/LearnPal/internal/service"
	"github.com/Tejas411/LearnPal/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	CourseService   *service.CourseService
	ProgressService *service.ProgressService
}

func NewTaskController(courseService *service.CourseService, progressService *service.ProgressService) *TaskController {
	return &TaskController{CourseService: courseService, ProgressService: progressService}
}

// GetTodayTasks godoc
// @Summary Incomplete tasks due today or overdue
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Task}
// @Router /api/tasks/today [get]
func (c *TaskController) GetTodayTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.CourseService.GetTodayTasks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

// CompleteTask godoc
// @Summary Mark a task as complete
// @Description Completes the task, records a progress event and bumps the user's streak. Re-completing yields 409.
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "task id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/tasks/{id}/complete [post]
func (c *TaskController) CompleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	err = c.ProgressService.CompleteTask(ctx.Request.Context(), uint(taskID), claims.UserID)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"message": "Task marked as complete"})
	case errors.Is(err, util.ErrTaskNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrTaskAlreadyComplete):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// GenerateTaskContent godoc
// @Summary Generate AI elaboration for a task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "task id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/tasks/{id}/content [post]
func (c *TaskController) GenerateTaskContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	content, err := c.CourseService.GenerateTaskContent(ctx.Request.Context(), uint(taskID), claims.UserID)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"content": content})
	case errors.Is(err, util.ErrTaskNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSyllabusGeneration):
		util.BadGateway(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
