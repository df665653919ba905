package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"

	"github.com/mcncl/jsonenv/internal/errors"
)

// DefaultFileMode is applied to newly created output files.
const DefaultFileMode os.FileMode = 0o644

// Writer replaces files atomically: data goes to a temporary file in the
// destination directory which is then renamed over the target, so readers
// never observe a partially written file.
type Writer struct {
	mode os.FileMode
}

// NewWriter creates a Writer that creates files with DefaultFileMode
func NewWriter() *Writer {
	return &Writer{mode: DefaultFileMode}
}

// WriteFile writes content to path verbatim, replacing any existing file.
// An existing file keeps its permission bits.
func (w *Writer) WriteFile(path, content string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewOutputError("output path is empty", errors.ErrInvalidFilePath)
	}

	mode := w.mode
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.NewOutputError(fmt.Sprintf("'%s' is a directory", path), errors.ErrNotAFile)
		}
		mode = info.Mode().Perm()
	}

	if err := writeFileAtomically(path, []byte(content), mode); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	return nil
}

func writeFileAtomically(fpath string, b []byte, fileMode os.FileMode) error {
	t, err := renameio.TempFile(filepath.Dir(fpath), fpath)
	if err != nil {
		return err
	}
	defer func() {
		_ = t.Cleanup()
	}()
	if err := t.Chmod(fileMode); err != nil {
		return err
	}
	bw := bufio.NewWriter(t)
	if _, err := bw.Write(b); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return t.CloseAtomicallyReplace()
}
