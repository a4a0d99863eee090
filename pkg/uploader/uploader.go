// Package uploader is the disk-backed blob store. Files land under
// {root}/{folder}/{slug(entity)}/... and are referenced everywhere else by
// their public URL.
package uploader

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attendee.link/configs"
	"attendee.link/configs/configslog"
	"attendee.link/utils"
)

// MaxFileSize is the hard per-file cap for form uploads (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
var ErrFileTooLarge = fmt.Errorf("file exceeds the %d byte limit", MaxFileSize)

// Options names the destination of a stored file.
type Options struct {
	Folder string // top-level grouping, e.g. "events"
	Entity string // entity name, slugged into the path
	SubDir string // optional extra path segment, e.g. "responses"
}

func (o Options) dir() string {
	parts := []string{configs.UploadDir(), o.Folder, utils.Slugify(o.Entity)}
	if o.SubDir != "" {
		parts = append(parts, o.SubDir)
	}
	return filepath.Join(parts...)
}

func (o Options) urlPrefix() string {
	parts := []string{"uploads", o.Folder, utils.Slugify(o.Entity)}
	if o.SubDir != "" {
		parts = append(parts, o.SubDir)
	}
	return configs.BaseURL() + "/static/" + path.Join(parts...)
}

// Store persists one multipart file and returns its public URL. A short
// random suffix keeps same-named uploads from colliding.
func Store(file *multipart.FileHeader, opts Options) (string, error) {
	if file.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	dir := opts.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload directory could not be created: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	name := fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return opts.urlPrefix() + "/" + name, nil
}

// StoreAll persists files in order and returns their URLs. The first failure
// aborts the batch; already-written files are left for Delete to clean up.
func StoreAll(files []*multipart.FileHeader, opts Options) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := Store(f, opts)
		if err != nil {
			return urls, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Delete removes previously stored files by URL. Missing files are ignored;
// other failures are logged and the rest of the batch continues.
func Delete(urls []string, opts Options) {
	prefix := opts.urlPrefix() + "/"
	for _, url := range urls {
		name := strings.TrimPrefix(url, prefix)
		if name == url || strings.Contains(name, "..") || strings.Contains(name, "/") {
			configslog.SLog.Warnw("refusing to delete upload outside its folder", "url", url)
			continue
		}
		if err := os.Remove(filepath.Join(opts.dir(), name)); err != nil && !os.IsNotExist(err) {
			configslog.Log.Error("stored file could not be removed", zap.String("url", url), zap.Error(err))
		}
	}
}
