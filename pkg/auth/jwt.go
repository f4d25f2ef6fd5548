package auth

import (
	"errors"
	"time"

	"github.com/Owenun/Windy/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 令牌无效或已过期
var ErrInvalidToken = errors.New("无效的令牌")

// Claims 自定义JWT声明结构体
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager 负责签发与校验访问令牌
type Manager struct {
	secret []byte
	issuer string
	expire time.Duration
}

// NewManager 创建令牌管理器
func NewManager(cfg config.JWTConfig) *Manager {
	expire := time.Duration(cfg.AccessExpireSeconds) * time.Second
	if expire <= 0 {
		expire = 2 * time.Hour
	}
	return &Manager{
		secret: []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
		expire: expire,
	}
}

// ExpiresIn 访问令牌有效期（秒）
func (m *Manager) ExpiresIn() int {
	return int(m.expire.Seconds())
}

// GenerateToken 签发访问令牌
func (m *Manager) GenerateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析JWT令牌
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(m.issuer))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
