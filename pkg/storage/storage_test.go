package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Paths(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/data/nl2rss")
	assert.Equal(t, filepath.Join("/data/nl2rss", "articles", "abc.html"), s.ArticlePath("abc"))
	assert.Equal(t, filepath.Join("/data/nl2rss", "feeds", "42.xml"), s.FeedPath(42))
}

func TestStore_WriteRead(t *testing.T) {
	memFs := afero.NewMemMapFs()
	s := New(memFs, "/content")

	t.Run("write creates missing dirs", func(t *testing.T) {
		require.NoError(t, s.WriteArticle("uid1", "<p>hi</p>"))

		info, err := memFs.Stat("/content/articles")
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		body, err := s.ReadArticle("uid1")
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", body)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Write(s.FeedPath(1), "first"))
		require.NoError(t, s.Write(s.FeedPath(1), "second"))
		body, err := s.Read(s.FeedPath(1))
		require.NoError(t, err)
		assert.Equal(t, "second", body)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := s.ArticleExists("uid1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ArticleExists("missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("read missing", func(t *testing.T) {
		_, err := s.ReadArticle("missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotExist)
	})
}

func TestStore_ModTime(t *testing.T) {
	memFs := afero.NewMemMapFs()
	s := New(memFs, "/content")
	path := s.FeedPath(7)

	_, err := s.ModTime(path)
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, s.Write(path, "<rss/>"))
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, memFs.Chtimes(path, old, old))

	mtime, err := s.ModTime(path)
	require.NoError(t, err)
	assert.True(t, mtime.Equal(old), "mtime %v, expected %v", mtime, old)
}

func TestStore_WriteReadOnly(t *testing.T) {
	s := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/content")
	err := s.WriteArticle("uid", "body")
	require.Error(t, err)

	var accessErr *AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, "mkdir", accessErr.Op)
	assert.Equal(t, filepath.Join("/content", "articles"), accessErr.Path)
	assert.Contains(t, err.Error(), "could not mkdir")
}

type renameFailFs struct {
	afero.Fs
}

func (f renameFailFs) Rename(string, string) error { return os.ErrPermission }

func TestStore_WriteAtomic(t *testing.T) {
	memFs := afero.NewMemMapFs()
	s := New(memFs, "/content")
	path := s.FeedPath(3)

	require.NoError(t, s.Write(path, "first"))
	require.NoError(t, s.Write(path, "second"))
	files, err := afero.ReadDir(memFs, filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, files, 1, "no temp files left")
	assert.Equal(t, "3.xml", files[0].Name())
	assert.Equal(t, fs.FileMode(0o640), files[0].Mode().Perm())

	t.Run("failed rename keeps old content", func(t *testing.T) {
		broken := New(renameFailFs{Fs: memFs}, "/content")
		err := broken.Write(path, "third")
		require.Error(t, err)
		var accessErr *AccessError
		require.True(t, errors.As(err, &accessErr))
		assert.Equal(t, "write", accessErr.Op)

		body, err := s.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "second", body)
		files, err := afero.ReadDir(memFs, filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, files, 1, "temp file removed")
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{err: &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, want: CodeNotExist},
		{err: &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, want: CodeAccess},
		{err: &fs.PathError{Op: "mkdir", Path: "x", Err: fs.ErrExist}, want: CodeExist},
		{err: os.ErrClosed, want: CodeUnexpected},
		{err: errors.New("something else"), want: CodeUnexpected},
	}
	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}
