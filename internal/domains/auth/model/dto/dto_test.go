package dto_test

import (
	"testing"

	"furk/infras/jwt"
	"furk/internal/domains/auth/model/dto"
	"furk/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	phone := "+15550001234"
	fullName := "Paws & Claws Grooming"

	tests := []struct {
		name         string
		request      dto.RegisterRequest
		expectedRole string
	}{
		{
			name: "merchant keeps requested role",
			request: dto.RegisterRequest{
				Email:    "owner@pawsclaws.example",
				Password: "hashed",
				Role:     constant.RoleMerchant,
				Phone:    &phone,
				FullName: &fullName,
			},
			expectedRole: constant.RoleMerchant,
		},
		{
			name: "empty role defaults to consumer",
			request: dto.RegisterRequest{
				Email:    "dana@example.com",
				Password: "hashed",
			},
			expectedRole: constant.RoleConsumer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.request.ToUserModel(tt.request.Email, "bcrypt-hash")

			require.NotEmpty(t, user.ID)
			assert.Equal(t, tt.request.Email, user.Email)
			assert.Equal(t, "bcrypt-hash", user.Password)
			assert.Equal(t, tt.expectedRole, user.Role)
			assert.Equal(t, tt.request.Phone, user.Phone)
			assert.Equal(t, tt.request.FullName, user.FullName)
			assert.False(t, user.IsVerified, "new accounts must wait for admin verification")
			assert.True(t, user.Active)
			assert.Equal(t, tt.request.Email, user.Metadata.CreatedBy)
			assert.Equal(t, tt.request.Email, user.Metadata.ModifiedBy)
		})
	}
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "rotated-access-token",
		RefreshToken: "rotated-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}
