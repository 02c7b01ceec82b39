package utils

import (
	"fmt"
	"strings"
	"time"
)

func ContainsStr(slice []string, item string) bool {
	for _, e := range slice {
		if e == item {
			return true
		}
	}
	return false
}

// Retry 尝试执行 fn，如果失败则重试，最多 retries 次
// delay 是两次重试之间的间隔，backoff=true 表示指数退避
func Retry(retries int, delay time.Duration, backoff bool, fn func() error) error {
	var err error
	for i := 0; i < retries; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if i < retries-1 {
			sleep := delay
			if backoff {
				sleep = delay * time.Duration(1<<i)
			}
			time.Sleep(sleep)
		}
	}
	return fmt.Errorf("after %d attempts, last error: %w", retries, err)
}

// MaskEmail 日志中隐藏邮箱，a***@x.com
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return email
	}
	return email[:1] + "***" + email[at:]
}
