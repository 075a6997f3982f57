package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/doeshing/gensuite/assets"
	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/ports"
)

// Console implements line-oriented interaction over stdio with
// theme-aware styling. It doubles as the cap-dialog prompter.
type Console struct {
	in         *bufio.Reader
	out        io.Writer
	theme      Theme
	animations bool
}

// NewConsole constructs a console referencing stdio when in/out are nil.
func NewConsole(in io.Reader, out io.Writer, theme Theme, animations bool) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		in:         bufio.NewReader(in),
		out:        out,
		theme:      theme,
		animations: animations,
	}
}

// ReadLine implements ports.Console.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, c.theme.Prompt.Render(prompt))
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Print implements ports.Console.
func (c *Console) Print(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Notice implements ports.Console.
func (c *Console) Notice(msg string) {
	fmt.Fprintln(c.out, c.theme.Dim.Render(msg))
}

// Result implements ports.Console.
func (c *Console) Result(text string) {
	fmt.Fprintln(c.out, c.theme.Result.Render(text))
}

// Banner implements ports.Console.
func (c *Console) Banner() {
	fmt.Fprintln(c.out, c.theme.Title.Render(strings.TrimRight(assets.Banner, "\n")))
	fmt.Fprintln(c.out, c.theme.Dim.Render("pi | primes | bench | help | exit"))
}

// Working implements ports.Console. With animations enabled it runs a
// spinner; otherwise it prints the label once.
func (c *Console) Working(label string) func() {
	if !c.animations {
		c.Notice(label + "...")
		return func() {}
	}
	sp := NewSpinner(c.out, c.theme.Dim.Render(label))
	sp.Start()
	return sp.Stop
}

// ChooseCap implements ports.CapPrompter. The full-cost call never starts
// while this dialog is pending; the decision is returned to the governor.
func (c *Console) ChooseCap(kind domain.WorkloadKind, requested, capped int, eta time.Duration) (domain.CapChoice, error) {
	c.Print(c.theme.Warn.Render(fmt.Sprintf("%s %s would take about %s - over the time budget.",
		domain.FormatCount(requested), kind.Unit(), domain.FormatDuration(eta))))
	for {
		line, err := c.ReadLine(fmt.Sprintf("[1] Use %s %s  [2] New amount  [3] Cancel > ",
			domain.FormatCount(capped), kind.Unit()))
		if err != nil {
			return domain.CapCancel, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "use", "y", "yes":
			return domain.CapAccept, nil
		case "2", "new", "retry":
			return domain.CapRetry, nil
		case "3", "cancel", "n", "no":
			return domain.CapCancel, nil
		}
		c.Notice("Enter 1, 2 or 3.")
	}
}

var _ ports.Console = (*Console)(nil)
var _ ports.CapPrompter = (*Console)(nil)
