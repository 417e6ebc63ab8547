package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const imageDirectory = "images"

// StorageService keeps uploaded files on the local public disk
type StorageService struct {
	logger *gecho.Logger
	cfg    *structs.StorageConfig
}

func NewStorageService(logger *gecho.Logger, cfg *structs.StorageConfig) *StorageService {
	return &StorageService{logger: logger, cfg: cfg}
}

// ValidateImage checks the size limit and that the content sniffs as an image.
// Failures are reported against field.
func (ss *StorageService) ValidateImage(field string, fh *multipart.FileHeader) error {
	label := strings.ReplaceAll(field, "_", " ")
	maxBytes := ss.cfg.MaxUploadKB * 1024
	if fh.Size > maxBytes {
		return lib.NewFieldError(field, fmt.Sprintf("The %s field must not be greater than %d kilobytes.", label, ss.cfg.MaxUploadKB))
	}

	mtype, err := sniff(fh)
	if err != nil {
		return lib.NewFieldError(field, fmt.Sprintf("The %s field failed to upload.", label))
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return lib.NewFieldError(field, fmt.Sprintf("The %s field must be an image.", label))
	}
	return nil
}

func sniff(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mimetype.DetectReader(f)
}

// StoreImage writes the upload to images/<uuid>.<ext> on the public disk and
// returns that relative path
func (ss *StorageService) StoreImage(fh *multipart.FileHeader) (string, error) {
	mtype, err := sniff(fh)
	if err != nil {
		return "", fmt.Errorf("failed to detect upload type: %w", err)
	}

	rel := path.Join(imageDirectory, uuid.NewString()+mtype.Extension())
	dst := filepath.Join(ss.cfg.PublicRoot, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close stored file: %w", err)
	}

	ss.logger.Debug("Stored upload", gecho.Field("path", rel), gecho.Field("size", fh.Size))
	return rel, nil
}

// Remove deletes stored files, ignoring ones that are already gone
func (ss *StorageService) Remove(paths ...string) {
	for _, rel := range paths {
		if rel == "" || strings.Contains(rel, "..") {
			continue
		}
		err := os.Remove(filepath.Join(ss.cfg.PublicRoot, filepath.FromSlash(rel)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			ss.logger.Warn("Failed to remove stored file", gecho.Field("path", rel), gecho.Field("error", err))
		}
	}
}
