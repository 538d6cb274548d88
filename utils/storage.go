package utils

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"techstorm/config"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	// decoders for image.DecodeConfig
	_ "image/jpeg"
	_ "image/png"
)

// ObjectStorage stores a blob and returns its public URL
type ObjectStorage interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

var (
	storageMu sync.RWMutex
	storage   ObjectStorage
)

// InitStorage uses Supabase when configured and the local upload dir otherwise
func InitStorage() {
	cfg := config.AppConfig
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceKey != "" {
		SetStorage(NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket))
		log.Printf("[STORAGE] Supabase bucket %q", cfg.StorageBucket)
		return
	}
	SetStorage(NewLocalStorage(cfg.UploadDir, "/uploads"))
	log.Printf("[STORAGE] local directory %s", cfg.UploadDir)
}

func SetStorage(s ObjectStorage) {
	storageMu.Lock()
	defer storageMu.Unlock()
	storage = s
}

func Storage() ObjectStorage {
	storageMu.RLock()
	s := storage
	storageMu.RUnlock()
	if s == nil {
		InitStorage()
		storageMu.RLock()
		s = storage
		storageMu.RUnlock()
	}
	return s
}

// UploadFile shrinks large images, names the object uniquely and stores it
func UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	data, err := ReadUploadedFile(file)
	if err != nil {
		return "", err
	}

	if shrunk, ok := ShrinkImage(data, file.Filename, config.AppConfig.UploadMaxWidth); ok {
		log.Printf("[STORAGE] %s resized from %d to %d bytes", file.Filename, len(data), len(shrunk))
		data = shrunk
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := GenerateUniqueFilename(folder, file.Filename)
	return Storage().Put(ctx, name, contentType, data)
}

// --- Supabase ---

type SupabaseStorage struct {
	client  *resty.Client
	baseURL string
	bucket  string
}

func NewSupabaseStorage(baseURL, serviceKey, bucket string) *SupabaseStorage {
	baseURL = strings.TrimRight(baseURL, "/")
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(serviceKey).
		SetTimeout(60 * time.Second)
	return &SupabaseStorage{client: client, baseURL: baseURL, bucket: bucket}
}

func (s *SupabaseStorage) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(data).
		Put(fmt.Sprintf("/storage/v1/object/%s/%s", s.bucket, name))
	if err != nil {
		return "", errors.Wrap(err, "supabase upload")
	}
	if res.IsError() {
		return "", errors.Errorf("supabase upload status %d: %s", res.StatusCode(), res.String())
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escapePath(name)), nil
}

// --- Local disk ---

type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(dir, urlPrefix string) *LocalStorage {
	return &LocalStorage{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *LocalStorage) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	return s.urlPrefix + "/" + escapePath(name), nil
}

func escapePath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
