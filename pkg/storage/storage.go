// Package storage keeps article bodies and rendered feeds on an afero filesystem
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/spf13/afero"
)

const (
	articlesDir = "articles"
	feedsDir    = "feeds"
)

// ErrNotExist returned when a requested file is absent
var ErrNotExist = errors.New("file does not exist")

// Code classifies filesystem failures
type Code string

// enum of access error codes
const (
	CodeExist      Code = "EEXIST"
	CodeAccess     Code = "EACCESS"
	CodeNotDir     Code = "ENOTDIR"
	CodeNotExist   Code = "ENOENT"
	CodeTooMany    Code = "EMFILE"
	CodeNoSpace    Code = "ENOSPC"
	CodeIsDir      Code = "EISDIR"
	CodeUnexpected Code = "UNEXPECTED"
)

var codeMessages = map[Code]string{
	CodeExist:      "file or directory already exists",
	CodeAccess:     "permission denied",
	CodeNotDir:     "a component of the path is not a directory",
	CodeNotExist:   "no such file or directory",
	CodeTooMany:    "file table overflow",
	CodeNoSpace:    "no space left on device",
	CodeIsDir:      "target is a directory",
	CodeUnexpected: "unexpected error",
}

// AccessError describes a failed filesystem operation
type AccessError struct {
	Op   string // mkdir, write, read, stat
	Path string
	Code Code
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("could not %s %s: %s", e.Op, e.Path, codeMessages[e.Code])
}

func (e *AccessError) Unwrap() error { return e.Err }

func newAccessError(op, path string, err error) *AccessError {
	return &AccessError{Op: op, Path: path, Code: classify(err), Err: err}
}

func classify(err error) Code {
	switch {
	case errors.Is(err, fs.ErrExist):
		return CodeExist
	case errors.Is(err, fs.ErrPermission):
		return CodeAccess
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotExist
	case errors.Is(err, syscall.ENOTDIR):
		return CodeNotDir
	case errors.Is(err, syscall.EMFILE):
		return CodeTooMany
	case errors.Is(err, syscall.ENOSPC):
		return CodeNoSpace
	case errors.Is(err, syscall.EISDIR):
		return CodeIsDir
	default:
		return CodeUnexpected
	}
}

// Store reads and writes content files under a root directory
type Store struct {
	fs   afero.Fs
	root string
}

// New makes a store rooted at the given path of fs
func New(fsys afero.Fs, root string) *Store {
	return &Store{fs: fsys, root: root}
}

// NewOS makes a store on the real filesystem
func NewOS(root string) *Store {
	return New(afero.NewOsFs(), root)
}

// ArticlePath returns the body file location for an article uid
func (s *Store) ArticlePath(uid string) string {
	return filepath.Join(s.root, articlesDir, uid+".html")
}

// FeedPath returns the rendered xml location for a feed id
func (s *Store) FeedPath(feedID int64) string {
	return filepath.Join(s.root, feedsDir, strconv.FormatInt(feedID, 10)+".xml")
}

// Write stores content to path through a temp file in the same dir, missing parent
// directories are created
func (s *Store) Write(path, content string) error {
	dir := filepath.Dir(path)
	if _, err := s.fs.Stat(dir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return newAccessError("access", dir, err)
		}
		lgr.Printf("[DEBUG] making dir %s", dir)
		if err := s.fs.MkdirAll(dir, 0o750); err != nil {
			return newAccessError("mkdir", dir, err)
		}
	}

	// readers see either the old file or the new one, never a partial write
	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return newAccessError("write", path, err)
	}
	_, err = tmp.WriteString(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = s.fs.Chmod(tmp.Name(), 0o640)
	}
	if err == nil {
		err = s.fs.Rename(tmp.Name(), path)
	}
	if err != nil {
		if rmErr := s.fs.Remove(tmp.Name()); rmErr != nil {
			lgr.Printf("[WARN] can't remove temp file %s: %v", tmp.Name(), rmErr)
		}
		return newAccessError("write", path, err)
	}
	lgr.Printf("[DEBUG] written %s", path)
	return nil
}

// Read returns file content, ErrNotExist for missing files
func (s *Store) Read(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", path, ErrNotExist)
		}
		return "", newAccessError("read", path, err)
	}
	return string(data), nil
}

// Exists reports whether a file is present
func (s *Store) Exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, newAccessError("stat", path, err)
	}
	return ok, nil
}

// ModTime returns the last modification time of a file, ErrNotExist for missing files
func (s *Store) ModTime(path string) (time.Time, error) {
	fi, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, fmt.Errorf("stat %s: %w", path, ErrNotExist)
		}
		return time.Time{}, newAccessError("stat", path, err)
	}
	return fi.ModTime(), nil
}

// ReadArticle returns the stored body of an article
func (s *Store) ReadArticle(uid string) (string, error) {
	return s.Read(s.ArticlePath(uid))
}

// ArticleExists reports whether the body of an article is stored
func (s *Store) ArticleExists(uid string) (bool, error) {
	return s.Exists(s.ArticlePath(uid))
}

// WriteArticle stores the body of an article
func (s *Store) WriteArticle(uid, html string) error {
	return s.Write(s.ArticlePath(uid), html)
}
