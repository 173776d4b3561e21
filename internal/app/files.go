package app

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dshills/onree/internal/engine/document"
)

// FileMode is the permission used when a save creates a file.
const FileMode = 0o644

// OpenFile loads path into doc, one row per line with line terminators
// stripped, and selects the grammar for path. A file that does not exist
// yet leaves doc empty but named, so the first save creates it.
func OpenFile(doc *document.Document, path string) error {
	doc.SetFilename(path)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &OperationError{Op: "open", Target: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &OperationError{Op: "open", Target: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &OperationError{Op: "open", Target: path, Err: ErrNotRegularFile}
	}

	lines, err := readLines(f)
	if err != nil {
		return &OperationError{Op: "open", Target: path, Err: err}
	}
	doc.Load(lines)
	return nil
}

// readLines splits r into lines, dropping trailing '\n' and '\r' bytes.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// SaveFile writes doc to its file, replacing previous contents, and marks
// it clean. It returns the number of bytes written. The last row gets no
// newline, so a file read with a trailing newline is saved without one.
func SaveFile(doc *document.Document) (int, error) {
	path := doc.Filename()
	if path == "" {
		return 0, &OperationError{Op: "save", Err: errors.New("no filename")}
	}

	text, n := doc.Serialize()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return 0, &OperationError{Op: "save", Target: path, Err: err}
	}

	written, err := io.WriteString(f, text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return written, &OperationError{Op: "save", Target: path, Err: err}
	}
	if written != n {
		return written, &OperationError{Op: "save", Target: path, Err: io.ErrShortWrite}
	}

	doc.ClearDirty()
	return n, nil
}
