package upload

import (
	"bytes"
	"fmt"
	"image"
	// Register decoders used to read preview dimensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
)

// DefaultMaxBytes mirrors the upload limit enforced by the classification service.
const DefaultMaxBytes int64 = 10 << 20

// Preview describes a selected image for display before submission.
type Preview struct {
	Name        string
	ContentType string
	Format      string
	Size        int64
	Width       int
	Height      int
}

// Dimensions returns "WxH" or an empty string when unknown.
func (p Preview) Dimensions() string {
	if p.Width == 0 || p.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", p.Width, p.Height)
}

// DeclaredType returns the media type a file declares through its extension,
// falling back to content sniffing when the extension is unknown.
func DeclaredType(name string, data []byte) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			if mediaType, _, err := mime.ParseMediaType(t); err == nil {
				return mediaType
			}
			return t
		}
	}
	if len(data) == 0 {
		return ""
	}
	sniffed := http.DetectContentType(data)
	if mediaType, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mediaType
	}
	return sniffed
}

// IsImageType reports whether a media type declares an image.
func IsImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

// Inspect reads a file from disk and returns it as an image payload.
func Inspect(path string) (model.Image, Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Image{}, Preview{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return model.Image{}, Preview{}, common.NewValidationError("file", common.ErrInvalidFileType, path+" is a directory")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Image{}, Preview{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	img := model.Image{
		Name:        filepath.Base(path),
		ContentType: DeclaredType(path, data),
		Data:        data,
	}
	return img, NewPreview(img), nil
}

// NewPreview describes img. Dimensions stay zero when the format cannot be decoded.
func NewPreview(img model.Image) Preview {
	p := Preview{
		Name:        img.Name,
		ContentType: img.ContentType,
		Size:        img.Size(),
	}

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data)); err == nil {
		p.Width = cfg.Width
		p.Height = cfg.Height
		p.Format = strings.ToUpper(format)
	} else if IsImageType(img.ContentType) {
		p.Format = strings.ToUpper(strings.TrimPrefix(img.ContentType, "image/"))
	}

	return p
}

// validate applies the local checks that keep bad input off the network.
func validate(img model.Image, maxBytes int64) error {
	if !IsImageType(img.ContentType) {
		return common.NewValidationError("file", common.ErrInvalidFileType, img.ContentType)
	}
	if maxBytes > 0 && img.Size() > maxBytes {
		return common.NewValidationError("file", common.ErrFileTooLarge,
			fmt.Sprintf("%d bytes exceeds the %d byte limit", img.Size(), maxBytes))
	}
	if img.Size() == 0 {
		return common.NewValidationError("file", common.ErrInvalidFileType, "empty file")
	}
	return nil
}
