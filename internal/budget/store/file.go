package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

var ErrInvalidUser = errors.New("invalid user id")

// File keeps one JSON document per user in a directory, named <user>.json.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return &File{dir: dir}, nil
}

func (f *File) path(userID string) (string, error) {
	if userID == "" || userID == "." || userID == ".." || strings.ContainsAny(userID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUser, userID)
	}

	return filepath.Join(f.dir, userID+".json"), nil
}

func (f *File) Read(_ context.Context, userID string) (*budget.Snapshot, error) {
	path, err := f.path(userID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return decode(data)
}

// Write replaces the user's file through a temporary file in the same directory.
func (f *File) Write(_ context.Context, userID string, s *budget.Snapshot) error {
	path, err := f.path(userID)
	if err != nil {
		return err
	}

	data, err := encode(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, userID+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
