package iox

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteFileAtomic writes to a temporary file next to dstFilename, and renames it into place
// once 'write' has succeeded. On failure, the temporary file is removed and dstFilename is untouched.
func WriteFileAtomic(dstFilename string, write func(w io.Writer) error) error {
	tmpName, err := writeTemp(dstFilename, write)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, dstFilename); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// writeTemp writes a temporary file in the same directory as dstFilename, and returns its name
func writeTemp(dstFilename string, write func(w io.Writer) error) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dstFilename), filepath.Base(dstFilename)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	bw := bufio.NewWriter(tmp)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0644)
	}
	if err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return tmpName, nil
}

// Staged writes a group of files to temporary names, so that none of them replace their
// destination until all of them have been written.
type Staged struct {
	tmp []string
	dst []string
}

// WriteFile stages dstFilename
func (s *Staged) WriteFile(dstFilename string, write func(w io.Writer) error) error {
	tmpName, err := writeTemp(dstFilename, write)
	if err != nil {
		return err
	}
	s.tmp = append(s.tmp, tmpName)
	s.dst = append(s.dst, dstFilename)
	return nil
}

func (s *Staged) WriteJSONFile(dstFilename string, v any) error {
	return s.WriteFile(dstFilename, encodeJSON(v))
}

// Commit renames the staged files into place, in the order they were staged.
// A destination that is a directory fails the whole commit before anything is renamed.
// If a rename fails, the files that have not been renamed yet are removed.
func (s *Staged) Commit() error {
	for _, dst := range s.dst {
		if st, err := os.Stat(dst); err == nil && st.IsDir() {
			s.Abort()
			return fmt.Errorf("Cannot replace directory %v with a file", dst)
		}
	}
	for i := range s.tmp {
		if err := os.Rename(s.tmp[i], s.dst[i]); err != nil {
			s.tmp = s.tmp[i:]
			s.dst = s.dst[i:]
			s.Abort()
			return err
		}
	}
	s.tmp = nil
	s.dst = nil
	return nil
}

// Abort removes every file that has been staged but not committed.
// It is safe to call after Commit.
func (s *Staged) Abort() {
	for _, tmp := range s.tmp {
		os.Remove(tmp)
	}
	s.tmp = nil
	s.dst = nil
}

func encodeJSON(v any) func(w io.Writer) error {
	return func(w io.Writer) error {
		return json.NewEncoder(w).Encode(v)
	}
}

// WriteJSONFile encodes v as compact JSON into filename
func WriteJSONFile(filename string, v any) error {
	return WriteFileAtomic(filename, encodeJSON(v))
}

// ReadJSONFile decodes the JSON in filename into v
func ReadJSONFile(filename string, v any) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(bufio.NewReader(f)).Decode(v)
}

// ReadLines returns the non-empty, whitespace-trimmed lines of a text file
func ReadLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// ReadCommaList returns the entries of a comma-separated text file.
// Entries are trimmed, and empty entries (eg from a trailing newline) are dropped.
func ReadCommaList(filename string) ([]string, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return SplitCommaList(string(raw)), nil
}

func SplitCommaList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// FileExists returns true if filename exists (file or directory)
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
