package handlers

import (
	"net/http"

	"laddercall_backend/internal/middleware"
	"laddercall_backend/internal/services"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	*BaseHandler
	communityService *services.CommunityService
}

func NewCommunityHandler(base *BaseHandler, communityService *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		BaseHandler:      base,
		communityService: communityService,
	}
}

func (h *CommunityHandler) RegisterRoutes(r *gin.RouterGroup) {
	communities := r.Group("/communities")
	communities.Use(middleware.AuthMiddleware())
	{
		communities.POST("", h.CreateCommunity)
		communities.GET("", h.ListCommunities)
		communities.GET("/:communityId", h.GetCommunity)
		communities.PUT("/:communityId", h.UpdateCommunity)
		communities.DELETE("/:communityId", h.DeleteCommunity)

		communities.POST("/:communityId/join", h.JoinCommunity)
		communities.POST("/:communityId/leave", h.LeaveCommunity)
		communities.POST("/:communityId/invites", h.InviteMember)
		communities.GET("/:communityId/members", h.ListMembers)
		communities.PUT("/:communityId/members/:userId/role", h.UpdateMemberRole)
		communities.DELETE("/:communityId/members/:userId", h.RemoveMember)
	}
}

func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommunityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.CreatorID = userID

	community, err := h.communityService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusCreated, "Community created successfully", community)
}

func (h *CommunityHandler) ListCommunities(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	communities, err := h.communityService.List(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "OK", gin.H{
		"communities": communities,
		"page":        page,
	})
}

func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	community, err := h.communityService.Get(communityID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "OK", community)
}

func (h *CommunityHandler) UpdateCommunity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateCommunityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	community, err := h.communityService.Update(c.Request.Context(), userID, communityID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Community updated successfully", community)
}

func (h *CommunityHandler) DeleteCommunity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.communityService.Delete(c.Request.Context(), userID, communityID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Community deleted successfully", nil)
}

func (h *CommunityHandler) JoinCommunity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	member, err := h.communityService.Join(c.Request.Context(), userID, communityID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Joined community successfully", member)
}

func (h *CommunityHandler) LeaveCommunity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.communityService.Leave(c.Request.Context(), userID, communityID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Left community successfully", nil)
}

func (h *CommunityHandler) InviteMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.InviteMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	member, err := h.communityService.Invite(c.Request.Context(), userID, communityID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusCreated, "Member invited successfully", member)
}

func (h *CommunityHandler) ListMembers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	members, err := h.communityService.ListMembers(userID, communityID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "OK", gin.H{
		"members": members,
		"total":   len(members),
	})
}

func (h *CommunityHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	targetUserID, err := ParseParamUint(c, "userId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateMemberRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	member, err := h.communityService.UpdateMemberRole(c.Request.Context(), userID, communityID, targetUserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Member role updated successfully", member)
}

func (h *CommunityHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	communityID, err := ParseParamUint(c, "communityId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	targetUserID, err := ParseParamUint(c, "userId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.communityService.RemoveMember(c.Request.Context(), userID, communityID, targetUserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	apperrors.Respond(c, http.StatusOK, "Member removed successfully", nil)
}
