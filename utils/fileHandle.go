package utils

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	safe := unsafeFilenameChars.ReplaceAllString(filepath.Base(filename), "_")
	if safe == "" || safe == "." {
		return "file"
	}
	return safe
}

// GenerateUniqueFilename builds folder/YYYYMMDD-uuid-name
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	name := fmt.Sprintf("%s-%s-%s", timestamp, uuid.NewString(), sanitizeFilename(originalFilename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ReadUploadedFile reads a multipart file fully
func ReadUploadedFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	return buf.Bytes(), nil
}

// ShrinkImage downsizes JPEG/PNG images wider than maxWidth. Anything else is returned untouched.
func ShrinkImage(data []byte, filename string, maxWidth int) ([]byte, bool) {
	if maxWidth <= 0 {
		return data, false
	}
	format, err := imaging.FormatFromFilename(filename)
	if err != nil || (format != imaging.JPEG && format != imaging.PNG) {
		return data, false
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= maxWidth {
		return data, false
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, false
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	out := new(bytes.Buffer)
	if err := imaging.Encode(out, resized, format); err != nil {
		return data, false
	}
	return out.Bytes(), true
}
