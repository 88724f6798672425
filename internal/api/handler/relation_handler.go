package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shanikumar001/project-gallery-backend/internal/middleware"
    "github.com/shanikumar001/project-gallery-backend/internal/service"
    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

// Follow 发起关注请求（已关注/已请求幂等）
// @Summary 关注用户
// @Tags 关系链
// @Produce json
// @Param id path string true "目标用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
    actor := middleware.UserID(c)
    target := c.Param("id")
    state, err := h.relService.RequestFollow(c.Request.Context(), actor, target)
    if err != nil {
        h.relError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "following": state.Following, "requested": state.Requested})
}

// Unfollow 撤回请求 / 取消关注（无条件幂等）
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Param id path string true "目标用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/follow [delete]
func (h *Handler) Unfollow(c *gin.Context) {
    actor := middleware.UserID(c)
    target := c.Param("id")
    if err := h.relService.Unfollow(c.Request.Context(), actor, target); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "following": false, "requested": false})
}

// ListFollowRequests 我收到的待处理关注请求（只允许查自己）
// @Summary 待处理关注请求列表
// @Tags 关系链
// @Produce json
// @Param id path string true "用户ID（me 表示当前用户）"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{id}/follow-requests [get]
func (h *Handler) ListFollowRequests(c *gin.Context) {
    actor := middleware.UserID(c)
    if id := c.Param("id"); id != "me" && id != actor {
        response.Forbidden(c, "cannot view another user's follow requests")
        return
    }
    list, err := h.relService.ListPendingRequests(c.Request.Context(), actor)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, list)
}

// AcceptFollowRequest 接受关注请求
// @Summary 接受关注请求
// @Tags 关系链
// @Produce json
// @Param id path string true "请求ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/follow-requests/{id}/accept [post]
func (h *Handler) AcceptFollowRequest(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.relService.AcceptRequest(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.relError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "following": true})
}

// DeclineFollowRequest 拒绝关注请求
// @Summary 拒绝关注请求
// @Tags 关系链
// @Produce json
// @Param id path string true "请求ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/follow-requests/{id}/decline [post]
func (h *Handler) DeclineFollowRequest(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.relService.DeclineRequest(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.relError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true})
}

// Connect 建立互通关系（单边发起、双向生效）
// @Summary 建立互通
// @Tags 关系链
// @Produce json
// @Param id path string true "目标用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id}/connect [post]
func (h *Handler) Connect(c *gin.Context) {
    actor := middleware.UserID(c)
    user, err := h.relService.Connect(c.Request.Context(), actor, c.Param("id"))
    if err != nil {
        h.relError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "connected": true, "user": user})
}

// FollowStatus 查询我对目标用户的关注态
// @Summary 关注状态
// @Tags 关系链
// @Produce json
// @Param id path string true "目标用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/follow-status [get]
func (h *Handler) FollowStatus(c *gin.Context) {
    actor := middleware.UserID(c)
    state, err := h.relService.FollowStatus(c.Request.Context(), actor, c.Param("id"))
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, state)
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
    userID := resolveUserID(c)
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
    list, err := h.relService.ListFollowing(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
    userID := resolveUserID(c)
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
    list, err := h.relService.ListFollowers(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

func (h *Handler) relError(c *gin.Context, err error) {
    switch {
    case errors.Is(err, service.ErrSelfRelation):
        response.BadRequest(c, err.Error())
    case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrRequestNotFound):
        response.NotFound(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}
