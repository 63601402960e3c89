package user

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// SessionStore 会话和Token黑名单存储(Redis实现见persistence/redis)
type SessionStore interface {
	SaveSession(ctx context.Context, sess redis.Session, ttl time.Duration) error
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录用例
//  1. 验证邮箱密码
//  2. 生成JWT Token对
//  3. 保存会话到Redis(有效期与Refresh Token相同)
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	now          func() time.Time
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		now:          time.Now,
	}
}

// LoginRequest 登录请求
// ClientIP和UserAgent由Handler从请求中取出,只记录到会话里
type LoginRequest struct {
	Email     string
	Password  string
	ClientIP  string
	UserAgent string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         *UserInfo `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"` // Access Token过期时间(秒)
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	sess := redis.Session{
		UserID:    u.ID,
		Email:     u.Email,
		ClientIP:  req.ClientIP,
		LoginAt:   uc.now(),
		UserAgent: req.UserAgent,
	}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.jwtManager.RefreshTokenTTL()); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Uint("user_id", u.ID).Str("ip", req.ClientIP).Msg("用户登录")
	return &LoginResponse{
		User:         toUserInfo(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// RefreshResponse 刷新Token响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RefreshTokenUseCase 用Refresh Token换新的Access Token
// 登出后会话已删除,旧的Refresh Token不能再用
type RefreshTokenUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	token, claims, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}

	sess, err := uc.sessionStore.GetSession(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if len(sess) == 0 {
		return nil, apperrors.ErrInvalidToken
	}

	return &RefreshResponse{
		AccessToken: token,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行登出
//  1. 删除会话(之后Refresh Token失效)
//  2. Access Token加入黑名单,黑名单过期时间等于Access Token有效期
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenTTL()); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Uint("user_id", userID).Msg("用户登出")
	return nil
}
