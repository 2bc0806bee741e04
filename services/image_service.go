package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/youness/libris/pkg"
)

// ImageService, kitap kapak görsellerinin disk yönetimi interface'i.
//
// Sadece dosya işleri yapar — hangi kitaba ait olduğunu bilmez.
// DB tarafı BookService'in sorumluluğudur.
type ImageService interface {
	// Save, görseli doğrular ve diske kaydeder.
	// Dönen değer URL path'idir (/api/uploads/{filename}).
	Save(file multipart.File, header *multipart.FileHeader) (string, error)

	// Delete, daha önce kaydedilmiş görseli diskten siler.
	// imageURL, Save'in döndürdüğü formatta olmalıdır.
	Delete(imageURL string) error
}

type imageService struct {
	uploadDir string
	maxSize   int64
}

// NewImageService, constructor. uploadDir yoksa oluşturur.
func NewImageService(uploadDir string, maxSize int64) (ImageService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &imageService{uploadDir: uploadDir, maxSize: maxSize}, nil
}

// allowedImageTypes, kapak görseli olarak kabul edilen MIME type'lar.
// Uzantı eşlemesi de buradan yapılır — istemcinin dosya adına güvenilmez.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *imageService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("%w: image too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])

	ext, ok := allowedImageTypes[mimeBase]
	if !ok {
		return "", fmt.Errorf("%w: image type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	// UUID dosya adı: çakışma yok, orijinal ad diske hiç değmez —
	// path traversal düşünmeye bile gerek kalmaz.
	diskFilename := uuid.NewString() + ext

	destPath := filepath.Join(s.uploadDir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "/api/uploads/" + diskFilename, nil
}

func (s *imageService) Delete(imageURL string) error {
	// URL'den dosya adını çıkar; Base ile dizin bileşenleri atılır.
	filename := filepath.Base(imageURL)
	if filename == "" || filename == "." || filename == ".." {
		return nil
	}

	err := os.Remove(filepath.Join(s.uploadDir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
