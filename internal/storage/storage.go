// Package storage keeps uploaded files in a private bucket on local disk.
// Downloads go through short-lived signed URLs so the bucket itself is never
// exposed.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidPath      = errors.New("invalid storage path")
	ErrInvalidSignature = errors.New("invalid download signature")
)

// SignedURLTTL is how long a download link stays valid.
const SignedURLTTL = time.Hour

// Store saves and serves files under folder-scoped paths.
type Store interface {
	Save(folder, filename string, r io.Reader) (string, error)
	Open(storagePath string) (io.ReadCloser, error)
	Delete(storagePath string) error
	SignedURL(storagePath string) (string, error)
	VerifyURL(token string) (string, error)
}

// LocalStore writes files below a root directory and signs download tokens
// with an HMAC key.
type LocalStore struct {
	root       string
	baseURL    string
	signingKey []byte
}

func NewLocalStore(root, baseURL, signingKey string) *LocalStore {
	return &LocalStore{
		root:       root,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		signingKey: []byte(signingKey),
	}
}

// Save stores the file under folder with a collision-proof generated name and
// returns the storage path.
func (s *LocalStore) Save(folder, filename string, r io.Reader) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	ext := path.Ext(filename)
	name := fmt.Sprintf("%v-%v%v", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
	storagePath := path.Join(folder, name)

	if err := s.validate(storagePath); err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(storagePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return storagePath, nil
}

func (s *LocalStore) Open(storagePath string) (io.ReadCloser, error) {
	if err := s.validate(storagePath); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(storagePath)))
	if err != nil {
		return nil, fmt.Errorf("os.Open -> %w", err)
	}

	return f, nil
}

func (s *LocalStore) Delete(storagePath string) error {
	if err := s.validate(storagePath); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(storagePath))); err != nil {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

type urlClaims struct {
	jwt.RegisteredClaims

	Path string `json:"path"`
}

// SignedURL returns a download URL valid for SignedURLTTL.
func (s *LocalStore) SignedURL(storagePath string) (string, error) {
	if err := s.validate(storagePath); err != nil {
		return "", err
	}

	claims := urlClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SignedURLTTL)),
		},
		Path: storagePath,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return fmt.Sprintf("%v/api/v1/files?token=%v", s.baseURL, token), nil
}

// VerifyURL validates a signed download token and returns the storage path.
func (s *LocalStore) VerifyURL(token string) (string, error) {
	claims := &urlClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSignature
	}

	if err = s.validate(claims.Path); err != nil {
		return "", err
	}

	return claims.Path, nil
}

func (s *LocalStore) validate(storagePath string) error {
	if storagePath == "" || path.IsAbs(storagePath) || strings.Contains(storagePath, "..") {
		return ErrInvalidPath
	}

	return nil
}
