package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/google/uuid"
    "go.uber.org/zap"
    "golang.org/x/crypto/bcrypt"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
    "github.com/shanikumar001/project-gallery-backend/pkg/logger"
    "github.com/shanikumar001/project-gallery-backend/pkg/otp"
)

var (
    ErrDuplicateUser      = errors.New("username or email already taken")
    ErrInvalidCredentials = errors.New("invalid email or password")
    ErrInvalidOTP         = errors.New("invalid or expired verification code")
)

// AuthService 注册 / 邮箱验证 / 登录 / OAuth 账号关联
type AuthService interface {
    Register(ctx context.Context, name, username, email, password string) (*model.User, error)
    VerifyEmail(ctx context.Context, email, code string) error
    Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
    OAuthLogin(ctx context.Context, externalID, email, name string) (token string, user *model.User, err error)
}

type authService struct {
    userRepo repository.UserRepository
    otpStore *otp.Store
    mail     *MailQueue
    jwtCfg   *config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, otpStore *otp.Store, mail *MailQueue, jwtCfg *config.JWTConfig) AuthService {
    return &authService{userRepo: userRepo, otpStore: otpStore, mail: mail, jwtCfg: jwtCfg}
}

// Register 建号并发送验证码邮件（邮件异步，失败只记日志）
func (s *authService) Register(ctx context.Context, name, username, email, password string) (*model.User, error) {
    if u, err := s.userRepo.GetByEmail(ctx, email); err != nil {
        return nil, err
    } else if u != nil {
        return nil, ErrDuplicateUser
    }
    if u, err := s.userRepo.GetByUsername(ctx, username); err != nil {
        return nil, err
    } else if u != nil {
        return nil, ErrDuplicateUser
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }
    u := &model.User{
        ID:       uuid.New().String(),
        Name:     name,
        Username: username,
        Email:    email,
        Password: string(hash),
    }
    if err := s.userRepo.Create(ctx, u); err != nil {
        return nil, err
    }

    code, err := s.otpStore.Issue(ctx, email)
    if err != nil {
        logger.Warn("issue otp failed", zap.String("email", email), zap.Error(err))
        return u, nil
    }
    s.mail.Enqueue(email, "Verify your email",
        fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires shortly.\n", u.DisplayName(), code))
    return u, nil
}

// VerifyEmail 原子校验并消费验证码
func (s *authService) VerifyEmail(ctx context.Context, email, code string) error {
    ok, err := s.otpStore.Consume(ctx, email, code)
    if err != nil {
        return err
    }
    if !ok {
        return ErrInvalidOTP
    }
    return s.userRepo.SetVerified(ctx, email)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
    u, err := s.userRepo.GetByEmail(ctx, email)
    if err != nil {
        return "", nil, err
    }
    if u == nil || u.Password == "" {
        return "", nil, ErrInvalidCredentials
    }
    if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
        return "", nil, ErrInvalidCredentials
    }
    token, err := s.mintToken(u.ID)
    if err != nil {
        return "", nil, err
    }
    return token, u, nil
}

// OAuthLogin 按外部身份 id 找号，不存在则建号（身份交换由上游完成）
func (s *authService) OAuthLogin(ctx context.Context, externalID, email, name string) (string, *model.User, error) {
    u, err := s.userRepo.GetByExternalID(ctx, externalID)
    if err != nil {
        return "", nil, err
    }
    if u == nil {
        // 同邮箱已有账号则关联，否则新建
        u, err = s.userRepo.GetByEmail(ctx, email)
        if err != nil {
            return "", nil, err
        }
        if u != nil {
            u.ExternalID = externalID
            if err := s.userRepo.Update(ctx, u); err != nil {
                return "", nil, err
            }
        } else {
            u = &model.User{
                ID:         uuid.New().String(),
                Name:       name,
                Username:   usernameFromEmail(email),
                Email:      email,
                ExternalID: externalID,
                Verified:   true,
            }
            if err := s.userRepo.Create(ctx, u); err != nil {
                return "", nil, err
            }
        }
    }
    token, err := s.mintToken(u.ID)
    if err != nil {
        return "", nil, err
    }
    return token, u, nil
}

func (s *authService) mintToken(userID string) (string, error) {
    now := time.Now()
    claims := jwt.RegisteredClaims{
        Subject:   userID,
        Issuer:    s.jwtCfg.Issuer,
        IssuedAt:  jwt.NewNumericDate(now),
        ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.Expire)),
    }
    return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
}

func usernameFromEmail(email string) string {
    for i := 0; i < len(email); i++ {
        if email[i] == '@' {
            return email[:i] + "-" + uuid.New().String()[:8]
        }
    }
    return "user-" + uuid.New().String()[:8]
}
