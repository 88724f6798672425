package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/shanikumar001/project-gallery-backend/internal/middleware"
    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

type updateProfileRequest struct {
    Name         string `json:"name"`
    Bio          string `json:"bio"`
    ProfilePhoto string `json:"profilePhoto"`
    Website      string `json:"website"`
}

// GetUser 用户资料（含粉丝/关注计数）；id 为 "me" 时返回当前用户
// @Summary 用户资料
// @Tags 用户
// @Produce json
// @Param id path string true "用户ID（me 表示当前用户）"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
    h.profile(c, resolveUserID(c))
}

// resolveUserID 将路径里的 "me" 解析为当前用户 id
func resolveUserID(c *gin.Context) string {
    id := c.Param("id")
    if id == "me" {
        return middleware.UserID(c)
    }
    return id
}

func (h *Handler) profile(c *gin.Context, id string) {
    ctx := c.Request.Context()
    u, err := h.userRepo.GetByID(ctx, id)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    if u == nil {
        response.NotFound(c, "user not found")
        return
    }
    followers, err := h.followRepo.CountFollowers(ctx, id)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    following, err := h.followRepo.CountFollowings(ctx, id)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{
        "id":            u.ID,
        "username":      u.Username,
        "name":          u.DisplayName(),
        "bio":           u.Bio,
        "profilePhoto":  u.ProfilePhoto,
        "website":       u.Website,
        "verified":      u.Verified,
        "followerCount": followers,
        "followingCount": following,
    })
}

// UpdateMe 更新当前用户资料（只能改自己）
// @Summary 更新资料
// @Tags 用户
// @Accept json
// @Produce json
// @Param id path string true "用户ID（me 表示当前用户）"
// @Param request body updateProfileRequest true "资料"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{id} [put]
func (h *Handler) UpdateMe(c *gin.Context) {
    var req updateProfileRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    ctx := c.Request.Context()
    actor := middleware.UserID(c)
    if id := resolveUserID(c); id != actor {
        response.Forbidden(c, "cannot modify another user's profile")
        return
    }
    u, err := h.userRepo.GetByID(ctx, actor)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    if u == nil {
        response.NotFound(c, "user not found")
        return
    }
    u.Name = req.Name
    u.Bio = req.Bio
    u.ProfilePhoto = req.ProfilePhoto
    u.Website = req.Website
    if err := h.userRepo.Update(ctx, u); err != nil {
        response.InternalError(c, err)
        return
    }
    h.profile(c, u.ID)
}
