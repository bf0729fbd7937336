// Package crypto encrypts and decrypts the short tokens embedded in survey links,
// such as single-use ids.
//
// Two wire formats are understood:
//
//	hex(iv):hex(ciphertext):hex(tag)   AES-256-GCM with a 16 byte iv, produced by SymmetricEncrypt
//	hex(iv):hex(ciphertext)            AES-256-CBC with PKCS#7 padding (legacy links)
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	keySize     = 32
	gcmIVSize   = 16
	gcmTagSize  = 16
	cbcIVSize   = aes.BlockSize
	hexKeyChars = keySize * 2
)

var (
	ErrInvalidKey        = errors.New("encryption key must be 32 bytes or 64 hex characters")
	ErrMalformedPayload  = errors.New("malformed encrypted payload")
	ErrDecryptionFailure = errors.New("decryption failed")
)

// parseKey accepts a 32 byte raw key or its 64 character hex form.
func parseKey(key string) ([]byte, error) {
	switch len(key) {
	case keySize:
		return []byte(key), nil
	case hexKeyChars:
		b, err := hex.DecodeString(key)
		if err != nil {
			return nil, ErrInvalidKey
		}
		return b, nil
	default:
		return nil, ErrInvalidKey
	}
}

// SymmetricEncrypt encrypts text with AES-256-GCM.
func SymmetricEncrypt(text, key string) (string, error) {
	k, err := parseKey(key)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, gcmIVSize)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	iv := make([]byte, gcmIVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(text), nil)
	ciphertext, tag := sealed[:len(sealed)-gcmTagSize], sealed[len(sealed)-gcmTagSize:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag),
	}, ":"), nil
}

// SymmetricDecrypt reverses SymmetricEncrypt and also accepts legacy CBC payloads.
func SymmetricDecrypt(text, key string) (string, error) {
	k, err := parseKey(key)
	if err != nil {
		return "", err
	}

	parts := strings.Split(text, ":")
	switch len(parts) {
	case 3:
		return decryptGCM(parts, k)
	case 2:
		return decryptCBC(parts, k)
	default:
		return "", ErrMalformedPayload
	}
}

func decryptGCM(parts []string, key []byte) (string, error) {
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != gcmIVSize {
		return "", ErrMalformedPayload
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformedPayload
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != gcmTagSize {
		return "", ErrMalformedPayload
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, gcmIVSize)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	plain, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptionFailure
	}
	return string(plain), nil
}

func decryptCBC(parts []string, key []byte) (string, error) {
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != cbcIVSize {
		return "", ErrMalformedPayload
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrMalformedPayload
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	unpadded, err := pkcs7Unpad(plain)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrDecryptionFailure
	}
	if !bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, ErrDecryptionFailure
	}
	return b[:len(b)-n], nil
}
