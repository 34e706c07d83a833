package libs

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"electronics-store/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageStore keeps uploaded images and returns a URL the API can hand back to clients.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// NewImageStore prefers Cloudinary when credentials are configured.
func NewImageStore(cfg *config.Config, logger *zap.Logger) (ImageStore, error) {
	if !cfg.Cloudinary.Enabled() {
		logger.Info("Cloudinary not configured, storing uploads on disk", zap.String("dir", cfg.UploadDir))
		return NewLocalStore(cfg.UploadDir, "/uploads"), nil
	}

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.Cloudinary.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.Cloudinary.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

func (s *LocalStore) Save(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(target, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(s.urlPrefix, folder, filename), nil
}

func (s *LocalStore) Delete(_ context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.urlPrefix+"/")
	if rel == url || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func (s *CloudinaryStore) Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", fmt.Errorf("cloudinary returned no url")
}

func (s *CloudinaryStore) Delete(ctx context.Context, url string) error {
	publicID := CloudinaryPublicID(url)
	if publicID == "" {
		return nil
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}

// CloudinaryPublicID extracts "folder/id" from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/payments/abc.jpg.
func CloudinaryPublicID(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok {
		return ""
	}
	if first, tail, found := strings.Cut(rest, "/"); found && len(first) > 1 && first[0] == 'v' && isDigits(first[1:]) {
		rest = tail
	}
	return strings.TrimSuffix(rest, path.Ext(rest))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
