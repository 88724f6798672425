package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/shanikumar001/project-gallery-backend/internal/service"
    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

type registerRequest struct {
    Name     string `json:"name" binding:"required"`
    Username string `json:"username" binding:"required,username"`
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=8"`
}

type verifyEmailRequest struct {
    Email string `json:"email" binding:"required,email"`
    Code  string `json:"code" binding:"required"`
}

type loginRequest struct {
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required"`
}

type oauthRequest struct {
    ExternalID string `json:"externalId" binding:"required"`
    Email      string `json:"email" binding:"required,email"`
    Name       string `json:"name"`
}

// Register 注册并发送邮箱验证码
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    u, err := h.authService.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrDuplicateUser) {
            response.Conflict(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Created(c, gin.H{"id": u.ID, "username": u.Username, "email": u.Email})
}

// VerifyEmail 校验并消费验证码
// @Summary 邮箱验证
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body verifyEmailRequest true "验证码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/verify-email [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
    var req verifyEmailRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
        if errors.Is(err, service.ErrInvalidOTP) {
            response.BadRequest(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"success": true, "verified": true})
}

// Login 邮箱密码登录
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    token, u, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrInvalidCredentials) {
            response.Unauthorized(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"token": token, "user": gin.H{"id": u.ID, "username": u.Username, "name": u.DisplayName()}})
}

// OAuthLogin 外部身份登录（身份交换由上游完成，这里只做账号关联）
// @Summary OAuth 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body oauthRequest true "外部身份"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/oauth [post]
func (h *Handler) OAuthLogin(c *gin.Context) {
    var req oauthRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    token, u, err := h.authService.OAuthLogin(c.Request.Context(), req.ExternalID, req.Email, req.Name)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"token": token, "user": gin.H{"id": u.ID, "username": u.Username, "name": u.DisplayName()}})
}
