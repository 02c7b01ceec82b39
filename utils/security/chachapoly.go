package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// ChaChaPoly 对称加密，每次加密使用随机nonce，输出为 nonce || ciphertext
type ChaChaPoly struct {
	aead cipher.AEAD
}

// NewChaChaPoly 由secret派生密钥，salt 和 sharedInfo 固定后加解密结果一致
func NewChaChaPoly(secret, salt, sharedInfo []byte) (*ChaChaPoly, error) {
	if len(secret) == 0 {
		return nil, errors.New("Key is not empty")
	}
	key, err := deriveKey(secret, salt, sharedInfo)
	if err != nil {
		return nil, err
	}
	// XChaCha20 的nonce为24字节，随机生成不用担心重复
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &ChaChaPoly{aead: aead}, nil
}

// 密钥衍生：通过HKDF把任意长度的secret转换为加密使用的对称密钥
func deriveKey(secret, salt, sharedInfo []byte) ([]byte, error) {
	hkdfSha512 := hkdf.New(sha512.New, secret, salt, sharedInfo)
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdfSha512, key); err != nil {
		return nil, err
	}
	return key, nil
}

// 加密
func (c *ChaChaPoly) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// 解密，被篡改的密文会返回错误
func (c *ChaChaPoly) Decrypt(ciphertext []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(ciphertext) < ns+c.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	return c.aead.Open(nil, ciphertext[:ns], ciphertext[ns:], nil)
}
