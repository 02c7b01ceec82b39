package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("token is invalid")

// AppMetadata 后端服务写入的应用元数据，只能由服务端修改
type AppMetadata struct {
	Role string `json:"role,omitempty"`
}

// CustomClaims 后端服务签发的会话token
type CustomClaims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"` // authenticated | anon | service_role
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// UserId 鉴权主题即用户的uuid
func (claims *CustomClaims) UserId() string {
	return claims.Subject
}

// 是否为匿名用户
func (claims *CustomClaims) IsAnonymousUser() bool {
	return claims.Subject == "" || strings.EqualFold(claims.Role, "anon")
}

// 是否为管理员
func (claims *CustomClaims) IsAdministrator(adminRole string) bool {
	return adminRole != "" && strings.EqualFold(claims.AppMetadata.Role, adminRole)
}

// BuildClaims 测试和本地联调时使用，生产环境的token由后端服务签发
func BuildClaims(exp time.Time, uid, email, adminRole string) *CustomClaims {
	return &CustomClaims{
		Email:       email,
		Role:        "authenticated",
		AppMetadata: AppMetadata{Role: adminRole},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func GenToken(c *CustomClaims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secretKey))
}

// 解析jwt token，只接受HS256
func ParseToken(jwtStr, secretKey string) (*CustomClaims, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	token, err := jwt.ParseWithClaims(jwtStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.IsAnonymousUser() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
