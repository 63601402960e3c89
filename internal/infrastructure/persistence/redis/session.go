package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Key设计：bookcatalog:session:{user_id}、bookcatalog:blacklist:{sha256(token)}
const (
	sessionKeyPrefix   = "bookcatalog:session:"
	blacklistKeyPrefix = "bookcatalog:blacklist:"
)

// SessionStore 会话存储
// 设计说明：
// 1. 登录时保存会话（过期时间与Refresh Token一致）
// 2. 登出时删除会话，并把Access Token加入黑名单（过期时间与Access Token一致）
// 3. 黑名单只存Token的哈希，不在Redis里保存完整Token
type SessionStore struct {
	client redis.UniversalClient
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Session 登录会话
type Session struct {
	UserID    uint
	Email     string
	ClientIP  string
	LoginAt   time.Time
	UserAgent string
}

// SaveSession 保存用户会话
// HSet和Expire放在一个事务管道里，避免留下没有过期时间的key
func (s *SessionStore) SaveSession(ctx context.Context, sess Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"user_id":    sess.UserID,
			"email":      sess.Email,
			"client_ip":  sess.ClientIP,
			"user_agent": sess.UserAgent,
			"login_at":   sess.LoginAt.Unix(),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// GetSession 获取用户会话，没有会话返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.ErrRedisError.WithCause(err)
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除用户会话（登出、修改密码、删除用户）
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
// ttl取Access Token有效期，过期后key自动删除
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// IsBlacklisted 检查Token是否在黑名单中
func (s *SessionStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithCause(err)
	}
	return n > 0, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}
