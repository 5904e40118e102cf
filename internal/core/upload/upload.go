// Package upload is the local implementation of the image-storage
// collaborator: it takes submitted bytes plus the original filename and
// hands back the stored name, which the catalog keeps as an opaque string.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	Dir string
}

func New(dir string) *Store { return &Store{Dir: dir} }

// Rename keeps only the original extension: ("foo.jpeg", 42) -> "42.jpeg".
// 文件名统一用狗的 id，静态目录里不会撞名。
func Rename(original string, dogID uint) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d%s", dogID, ext)
}

// Save writes the uploaded bytes under Dir and returns the stored filename.
func (s *Store) Save(r io.Reader, originalName string, dogID uint) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := Rename(originalName, dogID)
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored image; missing files are not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
