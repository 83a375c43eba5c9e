package cli

import (
	"fmt"
	"io"
	"strings"
)

// stdioPrompter 在终端里实现确认框和提示框。
type stdioPrompter struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

func newStdioPrompter(in io.Reader, out io.Writer, assumeYes bool) *stdioPrompter {
	return &stdioPrompter{in: in, out: out, assumeYes: assumeYes}
}

func (p *stdioPrompter) Confirm(message string) bool {
	if p.assumeYes {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	answer := strings.ToLower(strings.TrimSpace(readLine(p.in)))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

func (p *stdioPrompter) Alert(message string) {
	fmt.Fprintf(p.out, "! %s\n", message)
}
