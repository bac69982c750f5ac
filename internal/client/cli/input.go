package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetPassword prints prompt to w and reads a line from the terminal without
// echo. A newline is printed after the read.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// ReadLine reads one line from reader with the trailing newline removed.
// A final line without newline is returned as is.
func ReadLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readValue obtains a secret value interactively.
func (a *App) readValue() (string, error) {
	if isTerminal(int(os.Stdin.Fd())) {
		pw, err := GetPassword(a.errOut, "Secret value: ")
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	return ReadLine(a.reader)
}
