// Package service chứa logic nghiệp vụ của domain auth:
// đăng nhập quản trị và phát hành JWT.
package service

import (
	"crypto/subtle"
	"time"

	authdto "portfolio_api/internal/api/auth/dto"
	"portfolio_api/internal/api/middleware"
	"portfolio_api/internal/common"
	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"

	"github.com/dgrijalva/jwt-go"
)

// tokenTTL thời gian sống của một phiên quản trị
const tokenTTL = 24 * time.Hour

// AuthService xử lý đăng nhập quản trị.
// Hệ thống chỉ có một tài khoản quản trị, xác thực bằng mật khẩu trong config.
type AuthService struct{}

// NewAuthService tạo mới AuthService
func NewAuthService() (*AuthService, error) {
	return &AuthService{}, nil
}

// Login kiểm tra mật khẩu quản trị và phát hành JWT HS256.
// So sánh constant-time để tránh timing attack.
func (s *AuthService) Login(input *authdto.LoginInput) (*authdto.LoginResult, error) {
	expected := global.ServerConfig.AdminPassword
	if subtle.ConstantTimeCompare([]byte(input.Password), []byte(expected)) != 1 {
		logger.WithModule("auth").Warn("Đăng nhập thất bại: sai mật khẩu")
		return nil, common.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := &middleware.AdminClaims{
		Role: "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(global.ServerConfig.JwtSecret))
	if err != nil {
		return nil, common.NewError(common.ErrCodeAuthToken,
			"Không ký được token", common.StatusInternalServerError, err)
	}

	logger.WithModule("auth").Info("Đăng nhập quản trị thành công")
	return &authdto.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}
