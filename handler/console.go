package handler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-bank-ledger/common"
)

// Console reads operator input line by line and writes prompts and status text.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// ReadLine prints prompt and returns the next input line. It returns io.EOF
// once the input is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// ReadInt reads one line and parses it as a decimal integer. A line that is
// not an integer is consumed and reported as common.ErrInvalidInput.
func (c *Console) ReadInt(prompt string) (int, error) {
	line, err := c.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", common.ErrInvalidInput, line)
	}
	return n, nil
}
