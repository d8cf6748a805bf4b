package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

const breakerName = "redis-session"

// SessionStore 登录会话与Token黑名单
// Key：session:{user_id}（Hash）、blacklist:{token}
// 所有调用经过熔断器，Redis故障时快速失败
type SessionStore struct {
	client  redis.Cmdable
	breaker *circuitbreaker.CircuitBreaker
}

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.Cmdable, log *zap.Logger) *SessionStore {
	breaker := circuitbreaker.NewCircuitBreaker(breakerName, circuitbreaker.DefaultConfig())
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.SetCircuitBreakerState(name, int(to))
		log.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	metrics.SetCircuitBreakerState(breakerName, int(circuitbreaker.StateClosed))

	return &SessionStore{client: client, breaker: breaker}
}

// do 经过熔断器执行一次Redis调用
func (s *SessionStore) do(msg string, fn func() error) error {
	err := s.breaker.Execute(fn)
	switch {
	case err == nil:
		metrics.RecordCircuitBreaker(breakerName, "success")
		return nil
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordCircuitBreaker(breakerName, "rejected")
		return apperrors.ErrRedisError
	default:
		metrics.RecordCircuitBreaker(breakerName, "failure")
		return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: msg, Err: err}
	}
}

// SaveSession 保存登录会话，有效期与Refresh Token一致
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]any, ttl time.Duration) error {
	key := sessionKey(userID)
	return s.do("保存会话失败", func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, data)
			pipe.Expire(ctx, key, ttl)
			return nil
		})
		return err
	})
}

// GetSession 会话不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	var result map[string]string
	err := s.do("获取会话失败", func() error {
		var err error
		result, err = s.client.HGetAll(ctx, sessionKey(userID)).Result()
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除会话
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	return s.do("删除会话失败", func() error {
		return s.client.Del(ctx, sessionKey(userID)).Err()
	})
}

// AddToBlacklist 将Token加入黑名单，ttl取Access Token有效期
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return s.do("添加Token到黑名单失败", func() error {
		return s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err()
	})
}

// IsInBlacklist 检查Token是否已失效
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	var exists int64
	err := s.do("检查黑名单失败", func() error {
		var err error
		exists, err = s.client.Exists(ctx, blacklistKey(token)).Result()
		return err
	})
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}
