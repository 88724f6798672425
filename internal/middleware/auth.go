package middleware

import (
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/pkg/response"
)

// CtxUserID gin context 里当前用户 id 的键
const CtxUserID = "user_id"

// Auth 校验 Bearer token 并注入 user_id
func Auth(cfg *config.JWTConfig) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        if !strings.HasPrefix(header, "Bearer ") {
            response.Unauthorized(c, "missing bearer token")
            return
        }
        raw := strings.TrimPrefix(header, "Bearer ")

        claims := &jwt.RegisteredClaims{}
        token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
            if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                return nil, jwt.ErrSignatureInvalid
            }
            return []byte(cfg.Secret), nil
        })
        if err != nil || !token.Valid || claims.Subject == "" {
            response.Unauthorized(c, "invalid or expired token")
            return
        }
        c.Set(CtxUserID, claims.Subject)
        c.Next()
    }
}

// UserID 读取当前用户 id（必须在 Auth 之后调用）
func UserID(c *gin.Context) string {
    v, _ := c.Get(CtxUserID)
    id, _ := v.(string)
    return id
}
