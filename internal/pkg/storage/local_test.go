package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadDownload(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	stored, err := s.Upload(ctx, strings.NewReader("payslip"), "salary-slips/2024-01-31_salary_JohnDoe.pdf")
	require.NoError(t, err)
	assert.Equal(t, "salary-slips/2024-01-31_salary_JohnDoe.pdf", stored)

	rc, err := s.Download(ctx, stored)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payslip", string(body))

	assert.Equal(t, "/uploads/salary-slips/2024-01-31_salary_JohnDoe.pdf", s.URL(stored))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/passwd")
	assert.Error(t, err)

	_, err = s.Download(ctx, "../secret")
	assert.Error(t, err)
}

func TestLocalStorage_MoveAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("x"), "tmp/batch/a.pdf")
	require.NoError(t, err)

	require.NoError(t, s.Move(ctx, "tmp/batch/a.pdf", "salary-slips/a.pdf"))

	exists, err := s.Exists(ctx, "tmp/batch/a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = s.Exists(ctx, "salary-slips/a.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	err = s.Move(ctx, "tmp/batch/missing.pdf", "salary-slips/b.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)

	require.NoError(t, s.Delete(ctx, "salary-slips/a.pdf"))
	require.NoError(t, s.Delete(ctx, "salary-slips/a.pdf"), "deleting twice is not an error")

	require.NoError(t, s.RemoveAll(ctx, "tmp/batch"))
	exists, err = s.Exists(ctx, "tmp/batch")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, s.RemoveAll(ctx, "."))
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Download(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_URLRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	url := s.URL("salary-slips/2024-05-01_budi.pdf")
	assert.Equal(t, "/uploads/salary-slips/2024-05-01_budi.pdf", url)

	p, ok := s.PathFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "salary-slips/2024-05-01_budi.pdf", p)

	_, ok = s.PathFromURL("https://elsewhere.example/file.pdf")
	assert.False(t, ok)
}
