package workbook

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// Store serializes access to one workbook file. Every operation opens the
// file, applies its change and saves it again.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open prepares the workbook at path, creating it with empty Scores,
// Messages and SnakeScores sheets when it does not exist.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, crerr.New("workbook path is required")
	}

	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		f := excelize.NewFile()
		defer func() {
			_ = f.Close()
		}()
		if err := s.prepare(f); err != nil {
			return nil, err
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, crerr.Wrap(err, "drop default sheet")
		}
		if err := f.SaveAs(path); err != nil {
			return nil, crerr.Wrapf(err, "create workbook %s", path)
		}
		return s, nil
	} else if err != nil {
		return nil, crerr.Wrapf(err, "stat workbook %s", path)
	}

	if err := s.update(func(*excelize.File) error { return nil }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) prepare(f *excelize.File) error {
	if err := ensureSheet(f, SheetScores, scoreHeader); err != nil {
		return err
	}
	if err := ensureSheet(f, SheetMessages, messageHeader); err != nil {
		return err
	}
	return ensureSheet(f, SheetSnakeScores, snakeScoreHeader)
}

func (s *Store) read(fn func(f *excelize.File) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return crerr.Wrapf(err, "open workbook %s", s.path)
	}
	defer func() {
		_ = f.Close()
	}()
	return fn(f)
}

func (s *Store) update(fn func(f *excelize.File) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return crerr.Wrapf(err, "open workbook %s", s.path)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := s.prepare(f); err != nil {
		return err
	}
	if err := fn(f); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return crerr.Wrapf(err, "save workbook %s", s.path)
	}
	return nil
}
