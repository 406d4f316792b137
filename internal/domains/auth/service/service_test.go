package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furk/config"
	"furk/infras/jwt"
	jwtMocks "furk/infras/jwt/mocks"
	"furk/infras/otel/mocks"
	"furk/internal/domains/auth/model/dto"
	"furk/internal/domains/auth/service"
	userMocks "furk/internal/domains/user/mocks"
	userModel "furk/internal/domains/user/model"
	"furk/shared/constant"
	"furk/shared/failure"
)

type authFixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	svc      service.Auth
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &authFixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.userRepo, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

// bcrypt hash of "password".
const accountPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func consumerAccount() userModel.User {
	name := "Dana Reyes"

	return userModel.User{
		ID:         "consumer-41",
		Email:      "dana@example.com",
		Password:   accountPasswordHash,
		Role:       constant.RoleConsumer,
		FullName:   &name,
		IsVerified: true,
		Active:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	request := dto.RegisterRequest{
		Email:    "owner@pawsclaws.example",
		Password: "walkies123",
		Role:     constant.RoleMerchant,
	}

	tests := []struct {
		name       string
		setup      func(f *authFixture)
		wantErr    bool
		wantStatus int
	}{
		{
			name: "merchant signup succeeds",
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, request.Email, user.Email)
						assert.Equal(t, constant.RoleMerchant, user.Role)
						assert.False(t, user.IsVerified)
						assert.NotEqual(t, request.Password, user.Password)

						return nil
					})
			},
		},
		{
			name: "duplicate email is rejected",
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "existence check failure surfaces",
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			name: "insert failure surfaces",
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			err := f.svc.Register(context.Background(), request)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, failure.GetCode(err))
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	account := consumerAccount()
	request := dto.LoginRequest{Email: account.Email, Password: "password"}

	issuedPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", ExpiresIn: 900}

	tests := []struct {
		name    string
		request dto.LoginRequest
		setup   func(f *authFixture)
		wantErr bool
	}{
		{
			name:    "successful login",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
				f.jwt.EXPECT().GenerateTokenPair(account.ID, account.Email, account.Role).Return(issuedPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "unverified merchant still receives tokens",
			request: request,
			setup: func(f *authFixture) {
				merchant := consumerAccount()
				merchant.Role = constant.RoleMerchant
				merchant.IsVerified = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(merchant, nil)
				f.jwt.EXPECT().GenerateTokenPair(merchant.ID, merchant.Email, constant.RoleMerchant).Return(issuedPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "unknown email",
			request: dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("not found"))
			},
			wantErr: true,
		},
		{
			name:    "wrong password",
			request: dto.LoginRequest{Email: account.Email, Password: "fetch456"},
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
			},
			wantErr: true,
		},
		{
			name:    "deactivated account",
			request: request,
			setup: func(f *authFixture) {
				deactivated := consumerAccount()
				deactivated.Active = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deactivated, nil)
			},
			wantErr: true,
		},
		{
			name:    "token generation failure",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
				f.jwt.EXPECT().GenerateTokenPair(account.ID, account.Email, account.Role).Return(nil, errors.New("signing failed"))
			},
			wantErr: true,
		},
		{
			name:    "last login update failure fails the login",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
				f.jwt.EXPECT().GenerateTokenPair(account.ID, account.Email, account.Role).Return(issuedPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			result, err := f.svc.Login(context.Background(), tt.request)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, issuedPair.AccessToken, result.AccessToken)
			assert.Equal(t, issuedPair.RefreshToken, result.RefreshToken)
			assert.Equal(t, issuedPair.ExpiresIn, result.ExpiresIn)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt.EXPECT().RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{AccessToken: "rotated-access", RefreshToken: "rotated-refresh"}, nil)

		result, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "rotated-access", result.AccessToken)
		assert.Equal(t, "rotated-refresh", result.RefreshToken)
	})

	t.Run("invalid refresh token is unauthorized", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt.EXPECT().RefreshTokens("expired-token").Return(nil, errors.New("token expired"))

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired-token"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	account := consumerAccount()
	request := dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "longerwalkies456"}

	tests := []struct {
		name       string
		request    dto.ChangePasswordRequest
		setup      func(f *authFixture)
		wantErr    bool
		wantStatus int
	}{
		{
			name:    "successful password change",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "lookup failure surfaces",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			// Get reports a missing row as a zero-value user, not an error.
			name:    "missing user is not found",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:    true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "wrong current password",
			request: dto.ChangePasswordRequest{CurrentPassword: "fetch456", NewPassword: "longerwalkies456"},
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
			},
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "update failure surfaces",
			request: request,
			setup: func(f *authFixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, account.Email)
			err := f.svc.ChangePassword(ctx, tt.request, account.ID)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, failure.GetCode(err))
			}
		})
	}
}
