package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// MaxPhotoDimension bounds the longest edge of stored profile photos.
const MaxPhotoDimension = 512

var (
	ErrUnsupportedImage = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrForeignURL       = errors.New("url does not point into file storage")
)

type FileService interface {
	// UploadProfilePhoto downsizes the image and returns its public URL
	UploadProfilePhoto(ctx context.Context, file io.Reader, filename string) (string, error)

	// DatedName prefixes the base of filename with the current date
	DatedName(filename string) string

	// Open and DeleteByURL accept URLs produced by this service
	Open(ctx context.Context, url string) (io.ReadCloser, error)
	DeleteByURL(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

func (s *fileServiceImpl) DatedName(filename string) string {
	return s.now().Format("2006-01-02") + "_" + path.Base(strings.ReplaceAll(filename, "\\", "/"))
}

// UploadProfilePhoto implements FileService.
func (s *fileServiceImpl) UploadProfilePhoto(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrUnsupportedImage
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	encoded, outExt, err := downscale(buffer, MaxPhotoDimension)
	if err != nil {
		return "", err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	// Unique suffix instead of the upload name: two users sending "me.png" the
	// same day would otherwise share one file.
	name := fmt.Sprintf("profile-photos/%s_%s%s", s.now().Format("2006-01-02"), id.String(), outExt)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(encoded), name)
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo: %w", err)
	}
	return s.storage.URL(stored), nil
}

func (s *fileServiceImpl) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	p, ok := s.storage.PathFromURL(url)
	if !ok {
		return nil, ErrForeignURL
	}
	return s.storage.Download(ctx, p)
}

func (s *fileServiceImpl) DeleteByURL(ctx context.Context, url string) error {
	p, ok := s.storage.PathFromURL(url)
	if !ok {
		return ErrForeignURL
	}
	return s.storage.Delete(ctx, p)
}

// downscale re-encodes the image, shrinking it so neither edge exceeds max.
// PNG stays PNG to keep transparency; everything else becomes JPEG.
func downscale(buffer []byte, max int) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > max || height > max {
		if width >= height {
			height = height * max / width
			width = max
		} else {
			width = width * max / height
			height = max
		}
		img = resizeImage(img, max1(width), max1(height))
	}

	buf := new(bytes.Buffer)
	if format == "png" {
		if err := png.Encode(buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), ".png", nil
	}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), ".jpg", nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
