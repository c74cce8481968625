package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/brokerdesk/backend/internal/model"
	"github.com/brokerdesk/backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims JWT 载荷，Subject 为 Profile ID
type Claims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 手机号密码登录签发 JWT
type AuthService struct {
	tenantRepo repository.TenantRepository
	secret     []byte
	tokenTTL   time.Duration
}

func NewAuthService(tenantRepo repository.TenantRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
	}
}

// Login 校验手机号和密码，成功返回令牌与用户资料。
// 账号不存在与密码错误返回同一个错误，不泄露哪一半错了。
func (s *AuthService) Login(phone, password string) (string, *model.Profile, error) {
	profile, err := s.tenantRepo.GetProfileByPhone(phone)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &Claims{
		TenantID: profile.TenantID,
		Role:     profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// ParseToken 校验签名与有效期，返回解析后的载荷
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword 注册/初始化账号时使用
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
