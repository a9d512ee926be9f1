package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/dto"
	"github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, registerEnabled bool) (UserService, app.TokenManager, *memUserRepo) {
	t.Helper()
	cost := util.PasswordHashCost
	util.PasswordHashCost = 4
	t.Cleanup(func() { util.PasswordHashCost = cost })

	repo := &memUserRepo{}
	tm := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret", Expiry: time.Hour})
	cfg := &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: registerEnabled}}
	return NewUserService(repo, tm, nil, cfg), tm, repo
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newUserService(t, true)

	u, err := svc.Register(ctx, &dto.UserCreateRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, u.ID)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, util.CheckPasswordHash(stored.Password, "s3cret"))
}

func TestUserService_RegisterErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		enabled  bool
		username string
		want     *code.Code
	}{
		{name: "disabled", enabled: false, username: "alice", want: code.ErrorUserRegisterIsDisable},
		{name: "too short", enabled: true, username: "ab", want: code.ErrorUserUsernameNotValid},
		{name: "bad characters", enabled: true, username: "a b!", want: code.ErrorUserUsernameNotValid},
		{name: "duplicate", enabled: true, username: "taken", want: code.ErrorUserAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, repo := newUserService(t, tt.enabled)
			if tt.enabled {
				_, err := svc.Register(ctx, &dto.UserCreateRequest{Username: "taken", Password: "pw"})
				require.NoError(t, err)
			}
			_, err := svc.Register(ctx, &dto.UserCreateRequest{Username: tt.username, Password: "pw"})
			assertCode(t, err, tt.want)
			if tt.enabled {
				assert.Len(t, repo.users, 1)
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	svc, tm, _ := newUserService(t, true)

	u, err := svc.Register(ctx, &dto.UserCreateRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	tok, err := svc.Login(ctx, &dto.UserLoginRequest{Username: "alice", Password: "s3cret"}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)

	entity, err := tm.Parse(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, entity.UID)
	assert.Equal(t, "alice", entity.Username)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "unknown user", username: "bob", password: "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &dto.UserLoginRequest{Username: tt.username, Password: tt.password}, "")
			assertCode(t, err, code.ErrorUserLoginPasswordFailed)
		})
	}
}
