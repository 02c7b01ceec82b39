// Package download 生成和校验机器人文件的下载票据
package download

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"robodesk/utils/security"

	"github.com/goccy/go-json"
)

var (
	ErrTicketInvalid = errors.New("download ticket is invalid")
	ErrTicketExpired = errors.New("download ticket is expired")
	ErrBadPath       = errors.New("file is outside the download root")
)

type Ticket struct {
	RobotId   int64  `json:"r,string"`
	UserId    string `json:"u"`
	ExpiresAt int64  `json:"e"`
}

// Issuer 票据是加密的，客户端无法读取或修改内容
type Issuer struct {
	box *security.ChaChaPoly
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	box, err := security.NewChaChaPoly([]byte(secret), []byte("robodesk-download"), []byte("ticket-v1"))
	if err != nil {
		return nil, err
	}
	return &Issuer{box: box, ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) Issue(robotId int64, userId string) (string, time.Time, error) {
	exp := i.now().Add(i.ttl)
	data, err := json.Marshal(Ticket{RobotId: robotId, UserId: userId, ExpiresAt: exp.Unix()})
	if err != nil {
		return "", time.Time{}, err
	}
	sealed, err := i.box.Encrypt(data)
	if err != nil {
		return "", time.Time{}, err
	}
	return base64.RawURLEncoding.EncodeToString(sealed), exp, nil
}

func (i *Issuer) Open(token string) (Ticket, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Ticket{}, ErrTicketInvalid
	}
	data, err := i.box.Decrypt(sealed)
	if err != nil {
		return Ticket{}, ErrTicketInvalid
	}
	var t Ticket
	if err := json.Unmarshal(data, &t); err != nil {
		return Ticket{}, ErrTicketInvalid
	}
	if i.now().Unix() > t.ExpiresAt {
		return Ticket{}, ErrTicketExpired
	}
	return t, nil
}

// Resolve 把相对文件名解析到下载目录内，不允许跳出目录
func Resolve(root, name string) (string, error) {
	if root == "" || strings.TrimSpace(name) == "" {
		return "", ErrBadPath
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(absRoot, filepath.Clean(string(filepath.Separator)+name))
	rel, err := filepath.Rel(absRoot, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrBadPath
	}
	return full, nil
}

// SizeOf 文件不存在时返回0
func SizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}
