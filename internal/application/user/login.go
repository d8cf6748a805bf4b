package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// SessionStore 会话存储，由persistence/redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]any, ttl time.Duration) error
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserView `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token有效期（秒）
}

// LoginUseCase 用户登录
// 1. 校验用户名密码（只允许启用的用户）
// 2. 生成JWT Token对，Claims中带角色
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	log          *zap.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore, log *zap.Logger) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		log:          log,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 校验用户名密码
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		uc.log.Info("登录失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	// 2. 生成Token
	tokens, err := uc.jwtManager.GenerateToken(u.ID, u.Username, u.RoleNames())
	if err != nil {
		return nil, err
	}

	// 3. 保存会话，失败不影响登录
	session := map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, session, uc.jwtManager.RefreshTokenExpire()); err != nil {
		uc.log.Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	uc.log.Info("用户已登录", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return &LoginResponse{
		User:         ToView(u),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
	log          *zap.Logger
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager, log *zap.Logger) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager, log: log}
}

// Execute 删除会话并把Access Token加入黑名单（TTL取Access Token有效期）
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenExpire()); err != nil {
		return err
	}

	uc.log.Info("用户已登出", zap.Uint("user_id", userID))
	return nil
}

// RefreshTokenResponse 刷新响应，Refresh Token保持不变
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenUseCase 用Refresh Token换取新的Access Token
// 1. 验证Refresh Token签名、过期时间和类型
// 2. 会话必须存在（登出后会话被删除，Refresh Token随之失效）
// 3. 重新读取用户，已禁用的用户不能刷新，角色以数据库为准
// 4. 只签发新的Access Token
type RefreshTokenUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	log          *zap.Logger
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore, log *zap.Logger) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		log:          log,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshTokenResponse, error) {
	// 1. 验证Refresh Token
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// 2. 检查会话
	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID); err != nil {
		return nil, err
	}

	// 3. 重新读取用户
	u, err := uc.userService.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !u.Enabled {
		return nil, apperrors.ErrUnauthorized
	}

	// 4. 新的Access Token
	accessToken, err := uc.jwtManager.GenerateAccessToken(u.ID, u.Username, u.RoleNames())
	if err != nil {
		return nil, err
	}

	uc.log.Info("Token已刷新", zap.Uint("user_id", u.ID))
	return &RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(uc.jwtManager.AccessTokenExpire().Seconds()),
	}, nil
}
