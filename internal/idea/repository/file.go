package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/integrationhub/ideaportal/internal/idea"
	"github.com/integrationhub/ideaportal/pkg/logger"
)

// FileStore keeps each collection in its own JSON file. Saves go through a
// temporary file in the same directory followed by a rename, so readers see
// either the old or the new document, never a partial one.
type FileStore struct {
	ideasPath     string
	employeesPath string
	log           *logger.Entry
}

func NewFileStore(ideasPath, employeesPath string) *FileStore {
	return &FileStore{
		ideasPath:     ideasPath,
		employeesPath: employeesPath,
		log:           logger.With("store", "file"),
	}
}

func (f *FileStore) LoadIdeas(ctx context.Context) ([]idea.Idea, error) {
	b, err := f.read(CollectionIdeas, f.ideasPath)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return []idea.Idea{}, nil
	}
	ideas, err := decodeIdeas(b)
	if err != nil {
		f.log.Warnf("decode %s: %v", f.ideasPath, err)
		return nil, err
	}
	return ideas, nil
}

func (f *FileStore) LoadEmployees(ctx context.Context) ([]idea.Employee, error) {
	b, err := f.read(CollectionEmployees, f.employeesPath)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return []idea.Employee{}, nil
	}
	es, err := decodeEmployees(b)
	if err != nil {
		f.log.Warnf("decode %s: %v", f.employeesPath, err)
		return nil, err
	}
	return es, nil
}

// read returns nil bytes and no error for a missing file.
func (f *FileStore) read(collection, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Infof("%s not found, treating %s as empty", path, collection)
		return nil, nil
	}
	if err != nil {
		f.log.Warnf("read %s: %v", path, err)
		return nil, unreadable(collection, err)
	}
	return b, nil
}

func (f *FileStore) SaveIdeas(ctx context.Context, ideas []idea.Idea) error {
	b, err := encodeIdeas(ideas)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(f.ideasPath, b); err != nil {
		f.log.Errorf("write %s: %v", f.ideasPath, err)
		return fmt.Errorf("write ideas: %w", err)
	}
	f.log.Debugf("wrote %d ideas to %s", len(ideas), f.ideasPath)
	return nil
}

// Ping checks that the directory holding the ideas document exists.
func (f *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(f.ideasPath)
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
