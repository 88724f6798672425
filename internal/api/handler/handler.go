package handler

import (
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
    "github.com/shanikumar001/project-gallery-backend/internal/service"
)

// Handler 聚合全部 HTTP 处理器依赖
type Handler struct {
    authService    service.AuthService
    relService     service.RelationshipService
    msgService     service.MessageService
    convService    service.ConversationService
    projectService service.ProjectService
    userRepo       repository.UserRepository
    followRepo     repository.FollowRepository
}

func New(
    authService service.AuthService,
    relService service.RelationshipService,
    msgService service.MessageService,
    convService service.ConversationService,
    projectService service.ProjectService,
    userRepo repository.UserRepository,
    followRepo repository.FollowRepository,
) *Handler {
    return &Handler{
        authService:    authService,
        relService:     relService,
        msgService:     msgService,
        convService:    convService,
        projectService: projectService,
        userRepo:       userRepo,
        followRepo:     followRepo,
    }
}
