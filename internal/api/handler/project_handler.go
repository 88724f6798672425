package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/shanikumar001/project-gallery-backend/internal/middleware"
    "github.com/shanikumar001/project-gallery-backend/internal/service"
    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

type projectRequest struct {
    Title       string   `json:"title"`
    Description string   `json:"description"`
    MediaURL    string   `json:"mediaUrl"`
    MediaType   string   `json:"mediaType"`
    Tags        []string `json:"tags"`
}

type commentRequest struct {
    Text string `json:"text" binding:"required"`
}

// CreateProject 发布作品
// @Summary 发布作品
// @Tags 作品
// @Accept json
// @Produce json
// @Param request body projectRequest true "作品"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
    var req projectRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    actor := middleware.UserID(c)
    p, err := h.projectService.Create(c.Request.Context(), actor, service.ProjectInput{
        Title: req.Title, Description: req.Description,
        MediaURL: req.MediaURL, MediaType: req.MediaType, Tags: req.Tags,
    })
    if err != nil {
        h.projectError(c, err)
        return
    }
    response.Created(c, p)
}

// ListProjects 最新作品流（owner / saved 参数过滤）
// @Summary 作品列表
// @Tags 作品
// @Produce json
// @Param owner query string false "按所有者过滤（me 表示当前用户）"
// @Param saved query bool false "只看我收藏的"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
    ctx := c.Request.Context()
    if c.Query("saved") == "true" {
        list, err := h.projectService.ListSaved(ctx, middleware.UserID(c), page, pageSize)
        if err != nil {
            response.InternalError(c, err)
            return
        }
        response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
        return
    }
    if owner := c.Query("owner"); owner != "" {
        if owner == "me" {
            owner = middleware.UserID(c)
        }
        list, err := h.projectService.ListByOwner(ctx, owner, page, pageSize)
        if err != nil {
            response.InternalError(c, err)
            return
        }
        response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
        return
    }
    list, err := h.projectService.ListRecent(ctx, page, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// GetProject 作品详情
// @Summary 作品详情
// @Tags 作品
// @Produce json
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/projects/{id} [get]
func (h *Handler) GetProject(c *gin.Context) {
    p, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
    if err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, p)
}

// UpdateProject 更新作品（仅所有者）
// @Summary 更新作品
// @Tags 作品
// @Accept json
// @Produce json
// @Param id path string true "作品ID"
// @Param request body projectRequest true "作品"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/projects/{id} [put]
func (h *Handler) UpdateProject(c *gin.Context) {
    var req projectRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    actor := middleware.UserID(c)
    p, err := h.projectService.Update(c.Request.Context(), c.Param("id"), actor, service.ProjectInput{
        Title: req.Title, Description: req.Description,
        MediaURL: req.MediaURL, MediaType: req.MediaType, Tags: req.Tags,
    })
    if err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, p)
}

// DeleteProject 删除作品（仅所有者，连带清理边表）
// @Summary 删除作品
// @Tags 作品
// @Produce json
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/projects/{id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.projectService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true})
}

// LikeProject 点赞（幂等）
// @Summary 点赞
// @Tags 作品
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/like [post]
func (h *Handler) LikeProject(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.projectService.Like(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "liked": true})
}

// UnlikeProject 取消点赞（幂等）
// @Summary 取消点赞
// @Tags 作品
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/like [delete]
func (h *Handler) UnlikeProject(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.projectService.Unlike(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "liked": false})
}

// SaveProject 收藏（幂等）
// @Summary 收藏
// @Tags 作品
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/save [post]
func (h *Handler) SaveProject(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.projectService.Save(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "saved": true})
}

// UnsaveProject 取消收藏（幂等）
// @Summary 取消收藏
// @Tags 作品
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/save [delete]
func (h *Handler) UnsaveProject(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.projectService.Unsave(c.Request.Context(), c.Param("id"), actor); err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "saved": false})
}

// CommentProject 发表评论
// @Summary 发表评论
// @Tags 作品
// @Accept json
// @Produce json
// @Param id path string true "作品ID"
// @Param request body commentRequest true "评论"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/projects/{id}/comments [post]
func (h *Handler) CommentProject(c *gin.Context) {
    var req commentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    actor := middleware.UserID(c)
    cm, err := h.projectService.Comment(c.Request.Context(), c.Param("id"), actor, req.Text)
    if err != nil {
        h.projectError(c, err)
        return
    }
    response.Created(c, cm)
}

// ListProjectComments 评论列表
// @Summary 评论列表
// @Tags 作品
// @Produce json
// @Param id path string true "作品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/comments [get]
func (h *Handler) ListProjectComments(c *gin.Context) {
    list, err := h.projectService.ListComments(c.Request.Context(), c.Param("id"))
    if err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, list)
}

// DeleteProjectComment 删除评论（评论作者或作品所有者）
// @Summary 删除评论
// @Tags 作品
// @Param id path string true "作品ID"
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/projects/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteProjectComment(c *gin.Context) {
    actor := middleware.UserID(c)
    if err := h.projectService.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), actor); err != nil {
        h.projectError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true})
}

func (h *Handler) projectError(c *gin.Context, err error) {
    switch {
    case errors.Is(err, service.ErrEmptyTitle), errors.Is(err, service.ErrEmptyMessage):
        response.BadRequest(c, err.Error())
    case errors.Is(err, service.ErrNotOwner):
        response.Forbidden(c, err.Error())
    case errors.Is(err, service.ErrProjectNotFound), errors.Is(err, service.ErrCommentNotFound):
        response.NotFound(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}
