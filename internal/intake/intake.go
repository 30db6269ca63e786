// Package intake validates and stages multipart file uploads before they are
// handed to object storage.
package intake

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gucci1909/regis/internal/config"
	"github.com/gucci1909/regis/pkg/apperr"
)

// allowedTypes is the intake allow-set. Both the file extension and the
// declared content type must match it.
var allowedTypes = []string{"pdf", "csv", "jpg", "jpeg", "png"}

// StagedFile is an accepted upload staged on local disk under a
// collision-free name.
type StagedFile struct {
	Slot         string
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
}

type Intake struct {
	dir      string
	maxBytes int64
}

func New(cfg config.UploadConfig) *Intake {
	return &Intake{dir: cfg.Dir, maxBytes: cfg.MaxBytes}
}

// Stage validates and stages at most one file per named slot. Slots without
// an attached file map to nil so downstream code can distinguish "no file"
// from a failure. Any rejected file fails the whole set; files already
// staged are removed before returning.
func (i *Intake) Stage(form *multipart.Form, slots []string) (map[string]*StagedFile, error) {
	staged := make(map[string]*StagedFile, len(slots))

	for _, slot := range slots {
		headers := form.File[slot]
		if len(headers) == 0 {
			staged[slot] = nil
			continue
		}

		file, err := i.stageOne(slot, headers[0])
		if err != nil {
			i.Remove(staged)
			return nil, err
		}
		staged[slot] = file
	}

	return staged, nil
}

func (i *Intake) stageOne(slot string, header *multipart.FileHeader) (*StagedFile, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	if !extensionAllowed(ext) || !contentTypeAllowed(contentType) {
		return nil, apperr.New(apperr.Validation, "Only files of type PDF, CSV, JPG, JPEG or PNG are allowed")
	}
	if header.Size > i.maxBytes {
		return nil, apperr.New(apperr.Validation, fmt.Sprintf("File exceeds the maximum size of %d bytes", i.maxBytes))
	}

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create upload directory", err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to open uploaded file", err)
	}
	defer src.Close()

	dstPath := filepath.Join(i.dir, uuid.NewString()+ext)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to stage uploaded file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return nil, apperr.Wrap(apperr.Internal, "failed to stage uploaded file", err)
	}

	return &StagedFile{
		Slot:         slot,
		Path:         dstPath,
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
	}, nil
}

// Remove deletes staged files from disk. Missing files are ignored.
func (i *Intake) Remove(staged map[string]*StagedFile) {
	for _, file := range staged {
		if file != nil {
			os.Remove(file.Path)
		}
	}
}

func extensionAllowed(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, t := range allowedTypes {
		if ext == t {
			return true
		}
	}
	return false
}

func contentTypeAllowed(contentType string) bool {
	contentType = strings.ToLower(contentType)
	for _, t := range allowedTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// CleanupStale removes staged files older than maxAge. Upload staging is
// request-scoped, so anything old enough to hit this was orphaned by a
// crashed request.
func CleanupStale(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
