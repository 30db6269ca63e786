package intake

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gucci1909/regis/internal/config"
	"github.com/gucci1909/regis/pkg/apperr"
)

func buildForm(t *testing.T, files map[string]formFile) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for slot, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+slot+`"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	_, params, err := mime.ParseMediaType(writer.FormDataContentType())
	require.NoError(t, err)

	form, err := multipart.NewReader(&buf, params["boundary"]).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

type formFile struct {
	name        string
	contentType string
	content     []byte
}

func newTestIntake(t *testing.T) *Intake {
	t.Helper()
	return New(config.UploadConfig{Dir: t.TempDir(), MaxBytes: 1_000_000})
}

func TestStageAcceptsAllowedFile(t *testing.T) {
	in := newTestIntake(t)
	form := buildForm(t, map[string]formFile{
		"passportUpload": {name: "passport.pdf", contentType: "application/pdf", content: []byte("%PDF-1.4")},
	})

	staged, err := in.Stage(form, []string{"passportUpload", "cvUpload"})
	require.NoError(t, err)

	file := staged["passportUpload"]
	require.NotNil(t, file)
	assert.Equal(t, "passport.pdf", file.OriginalName)
	assert.True(t, strings.HasSuffix(file.Path, ".pdf"))
	assert.NotContains(t, filepath.Base(file.Path), "passport")
	assert.FileExists(t, file.Path)

	// Missing slot resolves to an explicit no-file marker, not an error.
	nilFile, ok := staged["cvUpload"]
	assert.True(t, ok)
	assert.Nil(t, nilFile)
}

func TestStageRejectsDisallowedExtension(t *testing.T) {
	in := newTestIntake(t)
	form := buildForm(t, map[string]formFile{
		"passportUpload": {name: "payload.exe", contentType: "application/pdf", content: []byte("MZ")},
	})

	_, err := in.Stage(form, []string{"passportUpload"})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestStageRejectsMismatchedContentType(t *testing.T) {
	in := newTestIntake(t)
	form := buildForm(t, map[string]formFile{
		"passportUpload": {name: "passport.pdf", contentType: "application/octet-stream", content: []byte("%PDF-1.4")},
	})

	_, err := in.Stage(form, []string{"passportUpload"})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestStageRejectsOversizeFile(t *testing.T) {
	in := New(config.UploadConfig{Dir: t.TempDir(), MaxBytes: 16})
	form := buildForm(t, map[string]formFile{
		"passportUpload": {name: "passport.pdf", contentType: "application/pdf", content: bytes.Repeat([]byte("a"), 17)},
	})

	_, err := in.Stage(form, []string{"passportUpload"})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestStageCleansUpOnRejection(t *testing.T) {
	dir := t.TempDir()
	in := New(config.UploadConfig{Dir: dir, MaxBytes: 1_000_000})
	form := buildForm(t, map[string]formFile{
		"emirateIdUpload": {name: "id.png", contentType: "image/png", content: []byte("png bytes")},
		"reraUpload":      {name: "rera.exe", contentType: "application/octet-stream", content: []byte("MZ")},
	})

	_, err := in.Stage(form, []string{"emirateIdUpload", "reraUpload"})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged siblings must be removed when any file is rejected")
}

func TestRemove(t *testing.T) {
	in := newTestIntake(t)
	form := buildForm(t, map[string]formFile{
		"cvUpload": {name: "cv.pdf", contentType: "application/pdf", content: []byte("%PDF-1.4")},
	})

	staged, err := in.Stage(form, []string{"cvUpload"})
	require.NoError(t, err)

	in.Remove(staged)
	assert.NoFileExists(t, staged["cvUpload"].Path)
}

func TestCleanupStale(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "fresh.pdf")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o644))

	removed, err := CleanupStale(dir, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func TestCleanupStaleMissingDir(t *testing.T) {
	removed, err := CleanupStale(filepath.Join(t.TempDir(), "nope"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
