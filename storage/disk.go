package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const thumbWidth = 320

// DiskStore keeps media on the local filesystem under dir, served by
// the router at /uploads/. The deletion key is the path relative to dir.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	for _, folder := range kindFolders {
		if err := os.MkdirAll(filepath.Join(dir, folder), 0755); err != nil {
			return nil, fmt.Errorf("creating upload dir: %w", err)
		}
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (Object, error) {
	kind, err := KindFromContentType(contentType)
	if err != nil {
		return Object{}, err
	}

	key, err := newKey(kind, filename)
	if err != nil {
		return Object{}, err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	out, err := os.Create(path)
	if err != nil {
		return Object{}, fmt.Errorf("saving %s: %w", key, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return Object{}, fmt.Errorf("saving %s: %w", key, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return Object{}, fmt.Errorf("saving %s: %w", key, err)
	}

	if kind == KindImage {
		if err := createThumb(path); err != nil {
			// The full-size image is stored; a missing thumbnail only
			// costs bandwidth on the browse page.
			log.Printf("thumbnail for %s failed: %v", key, err)
		}
	}

	return Object{
		URL:  s.baseURL + "/uploads/" + key,
		Key:  key,
		Kind: kind,
	}, nil
}

func (s *DiskStore) Delete(ctx context.Context, key string, kind Kind) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if kind == KindImage {
		if err := os.Remove(thumbPath(path)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func createThumb(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, thumbPath(path))
}

func thumbPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb.jpg"
}
