package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Tejas411/LearnPal/internal/model"
	"github.com/Tejas411/LearnPal/internal/service"
	"github.com/Tejas411/LearnPal/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// GenerateCourseRequest is the course-generation payload.
// swagger:model GenerateCourseRequest
type GenerateCourseRequest struct {
	Topic          string `json:"topic" binding:"required"`
	Difficulty     string `json:"difficulty"`
	TimeCommitment string `json:"timeCommitment"`
}

// GenerateCourse godoc
// @Summary Generate a course from a topic
// @Description Builds an AI syllabus for the topic and persists it as a course with ordered modules and tasks.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body GenerateCourseRequest true "generation payload"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/courses/generate [post]
func (c *CourseController) GenerateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		util.BadRequest(ctx, "topic must not be empty")
		return
	}
	if req.Difficulty != "" && !model.ValidDifficulty(req.Difficulty) {
		util.BadRequest(ctx, "difficulty must be beginner, intermediate or advanced")
		return
	}

	course, err := c.CourseService.GenerateCourse(ctx.Request.Context(), claims.UserID, req.Topic, req.Difficulty, req.TimeCommitment)
	if err != nil {
		if errors.Is(err, util.ErrSyllabusGeneration) {
			util.BadGateway(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// GetCourses godoc
// @Summary Active courses for the current user
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.GetUserCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary One course with its modules and tasks
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if course == nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	util.Success(ctx, course)
}
