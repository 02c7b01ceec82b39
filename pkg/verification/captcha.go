package verification

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"time"

	"robodesk/internal/consts"
	"robodesk/pkg/logger"

	afcap "github.com/afocus/captcha"
	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
)

const captchaTTL = 20 * time.Minute

// Store 验证码存储，GetDel 取出后立即删除，验证码只能使用一次
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, bool, error)
}

type Captcha struct {
	store Store
	cap   *afcap.Captcha
	mu    sync.Mutex // afcap.Captcha 不是并发安全的
}

// NewCaptcha font 为 ttf 字体文件路径
func NewCaptcha(font string, store Store) (*Captcha, error) {
	c := afcap.New()
	// 设置字体文件
	if err := c.SetFont(font); err != nil {
		return nil, err
	}
	// 设置验证码大小
	c.SetSize(128, 64)
	// 设置干扰强度
	c.SetDisturbance(afcap.MEDIUM)
	c.SetFrontColor(color.RGBA{255, 255, 255, 255})
	c.SetBkgColor(color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}, color.RGBA{0, 153, 0, 255})
	return &Captcha{store: store, cap: c}, nil
}

// NewVerifier 只校验不生成，用于测试或由其它实例生成验证码的部署
func NewVerifier(store Store) *Captcha {
	return &Captcha{store: store}
}

func getCaptchaCodeKey(code string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(code))))
	return consts.CaptchaPrefix + hex.EncodeToString(sum[:])
}

// Generate 返回base64编码的png
func (c *Captcha) Generate(ctx context.Context) (string, error) {
	if c.cap == nil {
		return "", errors.New("captcha generator is not configured")
	}
	c.mu.Lock()
	img, code := c.cap.Create(4, afcap.NUM)
	c.mu.Unlock()

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, img); err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, getCaptchaCodeKey(code), code, captchaTTL); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buffer.Bytes()), nil
}

func (c *Captcha) Verify(ctx context.Context, code string) bool {
	if strings.TrimSpace(code) == "" {
		return false
	}
	stored, ok, err := c.store.GetDel(ctx, getCaptchaCodeKey(code))
	if err != nil {
		logger.Errorf("captcha store error: %v", err)
		return false
	}
	return ok && strings.EqualFold(stored, strings.TrimSpace(code))
}

type redisStore struct {
	rc *redis.Client
}

func NewRedisStore(rc *redis.Client) Store {
	return &redisStore{rc: rc}
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rc.SetNX(ctx, key, value, ttl).Err()
}

func (s *redisStore) GetDel(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rc.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

type memoryEntry struct {
	value  string
	expire time.Time
}

type memoryStore struct {
	cache *lru.Cache
}

// NewMemoryStore 单实例部署时使用
func NewMemoryStore(size int) Store {
	c, _ := lru.New(size)
	return &memoryStore{cache: c}
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.cache.Add(key, memoryEntry{value: value, expire: time.Now().Add(ttl)})
	return nil
}

func (s *memoryStore) GetDel(_ context.Context, key string) (string, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s.cache.Remove(key)
	e := v.(memoryEntry)
	if time.Now().After(e.expire) {
		return "", false, nil
	}
	return e.value, true, nil
}
