package helper

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

var (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	White  = "\033[97m"
)

func init() {
	if runtime.GOOS == "windows" {
		Reset, Red, Green, Yellow, Blue, Purple, Cyan, Gray, White = "", "", "", "", "", "", "", "", ""
	}
}

type terminalReader struct {
	r io.Reader
}

type TerminalReader interface {
	ReadFromTerminalYN(def string) (selected string, err error)
}

func NewTerminalReader(r io.Reader) *terminalReader {
	return &terminalReader{r}
}

// ReadFromTerminalYN read terminal user input from a Yes No dialog. It returns y and n only with an explicit Yy or Nn input. If no input is submitted it returns default value. If the input is different from the expected one empty string is returned.
func (t *terminalReader) ReadFromTerminalYN(def string) (selected string, err error) {
	var u string
	var n int
	if n, err = fmt.Fscanln(t.r, &u); err != nil && err != io.EOF && err.Error() != "unexpected newline" {
		return "", err
	}
	if n <= 0 {
		u = def
	}
	u = strings.TrimSpace(strings.ToLower(u))
	if u == "y" {
		return "y", nil
	}
	if u == "n" {
		return "n", nil
	}
	return "", nil
}

// TokenReader reads a secret token from the user without echoing it back.
type TokenReader interface {
	Read(msg string) ([]byte, error)
}

type stdinTokenReader struct{}

func (pr *stdinTokenReader) Read(msg string) ([]byte, error) {
	fmt.Print(msg)
	token, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return token, nil
}

var DefaultTokenReader TokenReader = new(stdinTokenReader)
