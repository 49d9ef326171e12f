package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// SecretReader reads one secret per line. Echo is suppressed when the input is
// a terminal; piped input is read as plain lines.
type SecretReader struct {
	file   *os.File
	lines  *bufio.Reader
	prompt io.Writer
}

func NewSecretReader(file *os.File, prompt io.Writer) *SecretReader {
	return &SecretReader{
		file:   file,
		lines:  bufio.NewReader(file),
		prompt: prompt,
	}
}

func (reader *SecretReader) Read(label string) (string, error) {
	if reader.file == nil {
		return "", errors.New("stdin unavailable")
	}
	fmt.Fprint(reader.prompt, label)

	if restore, err := disableEcho(reader.file); err == nil {
		defer func() {
			restore()
			fmt.Fprintln(reader.prompt)
		}()
	}

	line, err := reader.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read secret: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && errors.Is(err, io.EOF) {
		return "", errors.New("no secret provided")
	}
	return line, nil
}
