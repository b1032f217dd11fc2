package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MaxTextFiles is the number of text files that can be open at once. Ids
// run from 1 to MaxTextFiles.
const MaxTextFiles = 32

type textFile struct {
	file   *os.File
	reader *bufio.Reader // nil when opened for writing
	writer *bufio.Writer // nil when opened for reading
}

// textFiles maps file ids to open text files. Ids are reused smallest
// first once closed.
type textFiles struct {
	files map[int]*textFile
}

func newTextFiles() *textFiles {
	return &textFiles{files: make(map[int]*textFile)}
}

func (t *textFiles) open(f *os.File, write bool) (int, error) {
	for id := 1; id <= MaxTextFiles; id++ {
		if _, used := t.files[id]; used {
			continue
		}
		tf := &textFile{file: f}
		if write {
			tf.writer = bufio.NewWriter(f)
		} else {
			tf.reader = bufio.NewReader(f)
		}
		t.files[id] = tf
		return id, nil
	}
	return 0, fmt.Errorf("too many open text files (%d)", MaxTextFiles)
}

func (t *textFiles) get(id int) (*textFile, error) {
	tf, ok := t.files[id]
	if !ok {
		return nil, fmt.Errorf("invalid file id: %d", id)
	}
	return tf, nil
}

func (t *textFiles) close(id int) error {
	tf, err := t.get(id)
	if err != nil {
		return err
	}
	delete(t.files, id)
	return tf.close()
}

// closeAll closes every open file, keeping the first error.
func (t *textFiles) closeAll() error {
	var errs []error
	for id, tf := range t.files {
		errs = append(errs, tf.close())
		delete(t.files, id)
	}
	return errors.Join(errs...)
}

func (tf *textFile) close() error {
	var flushErr error
	if tf.writer != nil {
		flushErr = tf.writer.Flush()
	}
	return errors.Join(flushErr, tf.file.Close())
}

// readString returns the rest of the current line without consuming the
// line break.
func (tf *textFile) readString() (string, error) {
	if tf.reader == nil {
		return "", fmt.Errorf("file is not open for reading")
	}
	var sb strings.Builder
	for {
		b, err := tf.reader.Peek(1)
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		if b[0] == '\r' || b[0] == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b[0])
		_, _ = tf.reader.ReadByte()
	}
}

// readReal skips leading blanks and reads the longest number prefix. A
// line without a number reads as 0.
func (tf *textFile) readReal() (float64, error) {
	if tf.reader == nil {
		return 0, fmt.Errorf("file is not open for reading")
	}
	for {
		b, err := tf.reader.Peek(1)
		if err != nil || (b[0] != ' ' && b[0] != '\t') {
			break
		}
		_, _ = tf.reader.ReadByte()
	}
	var sb strings.Builder
	for {
		b, err := tf.reader.Peek(1)
		if err != nil || !strings.ContainsRune("0123456789.-+eE", rune(b[0])) {
			break
		}
		sb.WriteByte(b[0])
		_, _ = tf.reader.ReadByte()
	}
	f, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, nil
	}
	return f, nil
}

// readLine skips to the start of the next line.
func (tf *textFile) readLine() error {
	if tf.reader == nil {
		return fmt.Errorf("file is not open for reading")
	}
	_, err := tf.reader.ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}

func (tf *textFile) eof() bool {
	if tf.reader == nil {
		return true
	}
	_, err := tf.reader.Peek(1)
	return err != nil
}

func (tf *textFile) write(s string) error {
	if tf.writer == nil {
		return fmt.Errorf("file is not open for writing")
	}
	_, err := tf.writer.WriteString(s)
	return err
}
