package handlers

import (
	"net/http"

	"laddercall_backend/internal/middleware"
	"laddercall_backend/internal/services"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type JobPostHandler struct {
	*BaseHandler
	jobPostService *services.JobPostService
}

func NewJobPostHandler(base *BaseHandler, jobPostService *services.JobPostService) *JobPostHandler {
	return &JobPostHandler{
		BaseHandler:    base,
		jobPostService: jobPostService,
	}
}

// RegisterRoutes registers the job-post routes. Every route is
// authenticated: visibility is always evaluated against the caller.
func (h *JobPostHandler) RegisterRoutes(r *gin.RouterGroup) {
	posts := r.Group("/job-posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.POST("", h.CreateJobPost)
		posts.GET("", h.ListJobPosts)
		posts.GET("/:postId", h.GetJobPost)
		posts.PUT("/:postId", h.UpdateJobPost)
		posts.DELETE("/:postId", h.DeleteJobPost)
	}
}

func (h *JobPostHandler) CreateJobPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobPostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.AuthorID = userID

	post, err := h.jobPostService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusCreated, "Job post created successfully", post)
}

func (h *JobPostHandler) ListJobPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListJobPostsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.PageSize = ParsePagination(c)

	posts, err := h.jobPostService.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "OK", gin.H{
		"jobPosts": posts,
		"total":    len(posts),
		"page":     req.Page,
	})
}

func (h *JobPostHandler) GetJobPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	postID, err := ParseParamUint(c, "postId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	post, err := h.jobPostService.Get(c.Request.Context(), userID, postID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "OK", post)
}

func (h *JobPostHandler) UpdateJobPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	postID, err := ParseParamUint(c, "postId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateJobPostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	post, err := h.jobPostService.Update(c.Request.Context(), userID, postID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Job post updated successfully", post)
}

func (h *JobPostHandler) DeleteJobPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	postID, err := ParseParamUint(c, "postId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.jobPostService.Delete(c.Request.Context(), userID, postID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Job post deleted successfully", nil)
}
