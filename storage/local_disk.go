package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// localDiskUploader keeps files in a directory that the HTTP server exposes
// under urlPrefix.
type localDiskUploader struct {
	dir       string
	urlPrefix string
}

func NewLocalDiskUploader(dir, urlPrefix string) (FileUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localDiskUploader{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

func (u *localDiskUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	target, err := u.pathFor(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := io.Copy(f, readerWithContext(ctx, reader)); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}
	return &UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *localDiskUploader) Delete(ctx context.Context, key string) error {
	target, err := u.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (u *localDiskUploader) GetPublicURL(key string) string {
	if key == "" {
		return ""
	}
	return path.Join(u.urlPrefix, u.relative(key))
}

// relative strips the uploads/ prefix: the directory itself is the uploads root.
func (u *localDiskUploader) relative(key string) string {
	return strings.TrimPrefix(strings.TrimPrefix(key, "/"), "uploads/")
}

func (u *localDiskUploader) pathFor(key string) (string, error) {
	rel := filepath.FromSlash(u.relative(key))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(u.dir, rel), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
