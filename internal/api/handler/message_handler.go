package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/shanikumar001/project-gallery-backend/internal/middleware"
    "github.com/shanikumar001/project-gallery-backend/internal/service"
    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

type sendMessageRequest struct {
    ToUserID string `json:"toUserId" binding:"required"`
    Text     string `json:"text" binding:"required"`
}

type markReadRequest struct {
    With string `json:"with" binding:"required"`
}

// Conversations 会话列表（按最近消息倒序，含未读数）
// @Summary 会话列表
// @Tags 私信
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/messages/conversations [get]
func (h *Handler) Conversations(c *gin.Context) {
    actor := middleware.UserID(c)
    list, err := h.convService.Conversations(c.Request.Context(), actor)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, list)
}

// UnreadCount 未读总数
// @Summary 未读总数
// @Tags 私信
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/messages/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
    actor := middleware.UserID(c)
    n, err := h.convService.UnreadTotal(c.Request.Context(), actor)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"count": n})
}

// MarkRead 将某对端发来的消息批量置已读
// @Summary 标记已读
// @Tags 私信
// @Accept json
// @Produce json
// @Param request body markReadRequest true "对端用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/messages/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
    var req markReadRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    actor := middleware.UserID(c)
    if err := h.convService.MarkRead(c.Request.Context(), actor, req.With); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true})
}

// ListThread 与某对端的消息线程（时间正序）
// @Summary 消息线程
// @Tags 私信
// @Produce json
// @Param with query string true "对端用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/messages [get]
func (h *Handler) ListThread(c *gin.Context) {
    with := c.Query("with")
    if with == "" {
        response.BadRequest(c, "missing required query parameter: with")
        return
    }
    actor := middleware.UserID(c)
    msgs, err := h.msgService.Thread(c.Request.Context(), actor, with)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, msgs)
}

// SendMessage 发送私信
// @Summary 发送私信
// @Tags 私信
// @Accept json
// @Produce json
// @Param request body sendMessageRequest true "消息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
    var req sendMessageRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    actor := middleware.UserID(c)
    msg, err := h.msgService.Send(c.Request.Context(), actor, req.ToUserID, req.Text)
    if err != nil {
        switch {
        case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrSelfMessage):
            response.BadRequest(c, err.Error())
        case errors.Is(err, service.ErrUserNotFound):
            response.NotFound(c, err.Error())
        default:
            response.InternalError(c, err)
        }
        return
    }
    response.Created(c, msg)
}
