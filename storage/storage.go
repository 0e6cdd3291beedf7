// Package storage wraps the object store holding uploaded PG media.
// Swap implementations by changing the concrete type injected at startup;
// the S3 implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidExtension = errors.New("invalid file extension")
)

// Object is one stored file: the public URL plus the key needed to
// delete it from the provider later.
type Object struct {
	URL  string
	Key  string
	Kind Kind
}

// Store is the interface for uploading and deleting media objects.
type Store interface {
	// Upload streams a file to the store. The object is publicly
	// fetchable at Object.URL once Upload returns.
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (Object, error)
	// Delete removes an object identified by key. Best effort.
	Delete(ctx context.Context, key string, kind Kind) error
}

var allowedExtensions = map[Kind][]string{
	KindImage: {".jpg", ".jpeg", ".png", ".gif", ".webp"},
	KindVideo: {".mp4", ".mov", ".avi", ".webm"},
}

var kindFolders = map[Kind]string{
	KindImage: "photos",
	KindVideo: "videos",
}

// KindFromContentType maps a declared content type to a media kind.
// Only the type prefix is trusted; anything but image/* or video/*
// is rejected.
func KindFromContentType(contentType string) (Kind, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, contentType)
	}
}

func newKey(kind Kind, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionAllowed(ext, kind) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, kind)
	}
	return kindFolders[kind] + "/" + uuid.New().String() + ext, nil
}

func extensionAllowed(ext string, kind Kind) bool {
	for _, a := range allowedExtensions[kind] {
		if ext == a {
			return true
		}
	}
	return false
}
