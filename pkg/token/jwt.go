package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer 写入所有令牌的 iss 字段。
const Issuer = "citizen-appeals"

// ErrEmptySecret 表示没有配置签名密钥。
var ErrEmptySecret = errors.New("jwt secret is empty")

// JWTManager 负责签发和校验后台用户的访问令牌。
// 原系统只有 access token，没有刷新流程；过期后重新登录。
type JWTManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// Claims 是后台令牌携带的用户信息。
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建 JWTManager，ttl 为访问令牌有效期。
func NewJWTManager(secretKey string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// GenerateToken 签发访问令牌，同时返回过期时间（登出时用作黑名单 TTL）。
func (m *JWTManager) GenerateToken(userID uint, username, role string) (string, time.Time, error) {
	if len(m.secretKey) == 0 {
		return "", time.Time{}, ErrEmptySecret
	}

	now := m.now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyToken 校验签名、有效期和签发者，只接受 HS256。
// 没有配置密钥时一律拒绝，否则空密钥签出的令牌也能通过校验。
func (m *JWTManager) VerifyToken(tokenString string) (*Claims, error) {
	if len(m.secretKey) == 0 {
		return nil, ErrEmptySecret
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}
