package user_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/dbtest"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// memorySessionStore 内存版会话存储
type memorySessionStore struct {
	mu        sync.Mutex
	sessions  map[uint]redis.Session
	blacklist map[string]time.Duration
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions:  make(map[uint]redis.Session),
		blacklist: make(map[string]time.Duration),
	}
}

func (m *memorySessionStore) SaveSession(_ context.Context, sess redis.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.UserID] = sess
	return nil
}

func (m *memorySessionStore) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return map[string]string{}, nil
	}
	return map[string]string{"email": sess.Email, "ip": sess.ClientIP}, nil
}

func (m *memorySessionStore) DeleteSession(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *memorySessionStore) AddToBlacklist(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[token] = ttl
	return nil
}

type env struct {
	service  user.Service
	jwt      *jwt.Manager
	sessions *memorySessionStore
}

func setup(t *testing.T) *env {
	fx := dbtest.NewFixture(t, dbtest.Open(t))
	return &env{
		service:  user.NewServiceWithCost(fx.Users, bcrypt.MinCost),
		jwt:      jwt.NewManager("test-secret", time.Hour, 24*time.Hour),
		sessions: newMemorySessionStore(),
	}
}

func (e *env) register(t *testing.T, email string) *appuser.UserInfo {
	t.Helper()
	info, err := appuser.NewRegisterUseCase(e.service).Execute(context.Background(), appuser.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return info
}

func TestRegisterUseCase(t *testing.T) {
	e := setup(t)
	info := e.register(t, "Ada@Example.com")
	assert.Equal(t, "ada@example.com", info.Email)
	assert.Equal(t, "Ada Lovelace", info.FullName)
	assert.False(t, info.IsAdmin)

	tests := []struct {
		name    string
		req     appuser.RegisterRequest
		wantErr error
	}{
		{"邮箱重复", appuser.RegisterRequest{FirstName: "A", LastName: "B", Email: "ada@example.com", Password: "secret123"}, apperrors.ErrEmailDuplicate},
		{"密码太短", appuser.RegisterRequest{FirstName: "A", LastName: "B", Email: "b@example.com", Password: "abc1"}, apperrors.ErrWeakPassword},
		{"密码没有数字", appuser.RegisterRequest{FirstName: "A", LastName: "B", Email: "b@example.com", Password: "abcdefghij"}, apperrors.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := appuser.NewRegisterUseCase(e.service).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoginRefreshLogout(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	info := e.register(t, "ada@example.com")

	login := appuser.NewLoginUseCase(e.service, e.jwt, e.sessions)
	refresh := appuser.NewRefreshTokenUseCase(e.jwt, e.sessions)
	logout := appuser.NewLogoutUseCase(e.jwt, e.sessions)

	t.Run("密码错误", func(t *testing.T) {
		_, err := login.Execute(ctx, appuser.LoginRequest{Email: "ada@example.com", Password: "wrong1234"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("邮箱不存在与密码错误不可区分", func(t *testing.T) {
		_, err := login.Execute(ctx, appuser.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	resp, err := login.Execute(ctx, appuser.LoginRequest{
		Email:     "ADA@example.com",
		Password:  "secret123",
		ClientIP:  "10.0.0.1",
		UserAgent: "curl/8",
	})
	require.NoError(t, err)
	assert.Equal(t, info.ID, resp.User.ID)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "10.0.0.1", e.sessions.sessions[info.ID].ClientIP)

	claims, err := e.jwt.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	t.Run("刷新", func(t *testing.T) {
		got, err := refresh.Execute(ctx, resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, got.AccessToken)
		assert.Equal(t, int64(3600), got.ExpiresIn)
	})

	t.Run("Access Token不能用来刷新", func(t *testing.T) {
		_, err := refresh.Execute(ctx, resp.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("登出后拉黑Access Token且不能再刷新", func(t *testing.T) {
		require.NoError(t, logout.Execute(ctx, info.ID, resp.AccessToken))
		assert.Equal(t, time.Hour, e.sessions.blacklist[resp.AccessToken])

		_, err := refresh.Execute(ctx, resp.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestProfileUseCases(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	ada := e.register(t, "ada@example.com")
	e.register(t, "grace@example.com")

	t.Run("查看资料", func(t *testing.T) {
		got, err := appuser.NewGetProfileUseCase(e.service).Execute(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", got.Email)

		_, err = appuser.NewGetProfileUseCase(e.service).Execute(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	update := appuser.NewUpdateProfileUseCase(e.service)

	t.Run("修改资料需要当前密码", func(t *testing.T) {
		_, err := update.Execute(ctx, appuser.UpdateProfileRequest{UserID: ada.ID, FirstName: "Augusta", CurrentPassword: "nope12345"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

		got, err := update.Execute(ctx, appuser.UpdateProfileRequest{UserID: ada.ID, FirstName: "Augusta", CurrentPassword: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "Augusta Lovelace", got.FullName)
	})

	t.Run("邮箱被占用", func(t *testing.T) {
		_, err := update.Execute(ctx, appuser.UpdateProfileRequest{UserID: ada.ID, Email: "grace@example.com", CurrentPassword: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("修改密码", func(t *testing.T) {
		change := appuser.NewChangePasswordUseCase(e.service)
		err := change.Execute(ctx, appuser.ChangePasswordRequest{UserID: ada.ID, OldPassword: "secret123", NewPassword: "short"})
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

		require.NoError(t, change.Execute(ctx, appuser.ChangePasswordRequest{UserID: ada.ID, OldPassword: "secret123", NewPassword: "newsecret456"}))

		_, err = e.service.Login(ctx, "ada@example.com", "secret123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
		_, err = e.service.Login(ctx, "ada@example.com", "newsecret456")
		assert.NoError(t, err)
	})
}

func TestAdminUseCases(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.register(t, "ada@example.com")

	admin, err := appuser.NewCreateUserUseCase(e.service).Execute(ctx, appuser.CreateUserRequest{
		RegisterRequest: appuser.RegisterRequest{FirstName: "Root", LastName: "Admin", Email: "root@example.com", Password: "admin1234"},
		IsAdmin:         true,
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	t.Run("列表", func(t *testing.T) {
		page, err := appuser.NewListUsersUseCase(e.service).Execute(ctx, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Len(t, page.Data, 2)

		zero := 0
		_, err = appuser.NewListUsersUseCase(e.service).Execute(ctx, 0, &zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidLimit)
	})

	t.Run("删除用户同时删除会话", func(t *testing.T) {
		require.NoError(t, e.sessions.SaveSession(ctx, redis.Session{UserID: admin.ID}, time.Hour))

		remove := appuser.NewDeleteUserUseCase(e.service, e.sessions)
		require.NoError(t, remove.Execute(ctx, admin.ID))
		assert.NotContains(t, e.sessions.sessions, admin.ID)

		assert.ErrorIs(t, remove.Execute(ctx, admin.ID), apperrors.ErrUserNotFound)
	})
}

var _ appuser.SessionStore = (*memorySessionStore)(nil)
var _ appuser.SessionStore = (*redis.SessionStore)(nil)
