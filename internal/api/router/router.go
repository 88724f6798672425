package router

import (
    "net/http"
    "regexp"

    sentrygin "github.com/getsentry/sentry-go/gin"
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
    "golang.org/x/time/rate"

    _ "github.com/shanikumar001/project-gallery-backend/docs"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/internal/api/handler"
    "github.com/shanikumar001/project-gallery-backend/internal/middleware"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,32}$`)

// New 组装 gin 引擎：中间件 + 全部路由
func New(cfg *config.Config, h *handler.Handler) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)

    if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
        _ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
            return usernameRe.MatchString(fl.Field().String())
        })
    }

    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(middleware.RequestLog())
    r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(otelgin.Middleware(cfg.Telemetry.Service))
    r.Use(middleware.RateLimit(rate.Limit(50), 100))

    r.GET("/health", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"status": "ok"})
    })
    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    api := r.Group("/api/v1")

    auth := api.Group("/auth")
    {
        auth.POST("/register", h.Register)
        auth.POST("/verify-email", h.VerifyEmail)
        auth.POST("/login", h.Login)
        auth.POST("/oauth", h.OAuthLogin)
    }

    authed := api.Group("", middleware.Auth(&cfg.JWT))

    // gin 路由树不允许 "me" 这类静态段与 ":id" 并列，
    // "me" 在 handler 内解析为当前用户
    users := authed.Group("/users")
    {
        users.GET("/:id", h.GetUser)
        users.PUT("/:id", h.UpdateMe)
        users.GET("/:id/follow-requests", h.ListFollowRequests)
        users.POST("/:id/follow", h.Follow)
        users.DELETE("/:id/follow", h.Unfollow)
        users.GET("/:id/follow-status", h.FollowStatus)
        users.POST("/:id/connect", h.Connect)
        users.GET("/:id/following", h.ListFollowing)
        users.GET("/:id/followers", h.ListFollowers)
    }

    requests := authed.Group("/follow-requests")
    {
        requests.POST("/:id/accept", h.AcceptFollowRequest)
        requests.POST("/:id/decline", h.DeclineFollowRequest)
    }

    messages := authed.Group("/messages")
    {
        messages.GET("", h.ListThread)
        messages.POST("", h.SendMessage)
        messages.GET("/conversations", h.Conversations)
        messages.GET("/unread-count", h.UnreadCount)
        messages.POST("/read", h.MarkRead)
    }

    projects := authed.Group("/projects")
    {
        projects.POST("", h.CreateProject)
        projects.GET("", h.ListProjects)
        projects.GET("/:id", h.GetProject)
        projects.PUT("/:id", h.UpdateProject)
        projects.DELETE("/:id", h.DeleteProject)
        projects.POST("/:id/like", h.LikeProject)
        projects.DELETE("/:id/like", h.UnlikeProject)
        projects.POST("/:id/save", h.SaveProject)
        projects.DELETE("/:id/save", h.UnsaveProject)
        projects.POST("/:id/comments", h.CommentProject)
        projects.GET("/:id/comments", h.ListProjectComments)
        projects.DELETE("/:id/comments/:commentId", h.DeleteProjectComment)
    }

    return r
}
