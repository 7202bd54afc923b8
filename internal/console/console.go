// Package console implements the line-oriented terminal protocol of the
// assistant: the "You: " prompt, quit handling, and the rendering of
// streamed agent output (reasoning text, tool notices, answer tokens).
//
// The console runs on a single logical thread: it suspends in the stream
// callback while awaiting the next chunk from the agent and resumes
// synchronously to print it. It holds no state across turns beyond the
// optional caller-supplied history.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// quitWords terminate the interactive loop, matched case-insensitively.
var quitWords = map[string]struct{}{
	"quit": {},
	"exit": {},
	"q":    {},
}

// IsQuit reports whether the input is a quit command.
func IsQuit(input string) bool {
	_, ok := quitWords[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// Console reads user input and writes the chat transcript. It is built on
// injected reader/writer pairs so tests can drive it with buffers.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	styles  Styles
}

// New creates a Console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
		styles:  DefaultStyles(),
	}
}

// Banner prints the welcome header and capability overview.
func (c *Console) Banner(productName string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Header.Render(rule))
	fmt.Fprintln(c.out, c.styles.Header.Render(fmt.Sprintf("  %s Assistant", productName)))
	fmt.Fprintln(c.out, c.styles.Header.Render(rule))
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "👋 Hi! I'm your %s assistant. I can help you with:\n\n", productName)
	fmt.Fprintln(c.out, "  📊 Subscription & Billing")
	fmt.Fprintln(c.out, "     Ask about your plan, seats, features, or renewal dates")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "  👥 Team Management")
	fmt.Fprintln(c.out, "     See who's on your team, their roles, and departments")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "  📚 Product Questions")
	fmt.Fprintln(c.out, "     How-to guides, features, troubleshooting, and best practices")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	fmt.Fprintln(c.out, "Type 'quit' to exit")
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
}

// ReadLine prints the prompt and reads one line of user input. ok is false
// on end of input (Ctrl+D).
func (c *Console) ReadLine() (input string, ok bool) {
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, c.styles.Prompt.Render("You: "))
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

// AssistantPrefix prints the "Assistant: " marker that precedes streamed
// output.
func (c *Console) AssistantPrefix() {
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, c.styles.Assistant.Render("Assistant: "))
}

// Goodbye prints the farewell message.
func (c *Console) Goodbye() {
	fmt.Fprintln(c.out, "\nGoodbye! 👋")
}

// Errorf prints a styled error line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Printf writes formatted text to the transcript.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// NewRenderer returns a Renderer for one assistant turn, writing to the
// console's output with its styles.
func (c *Console) NewRenderer() *Renderer {
	return &Renderer{out: c.out, styles: c.styles}
}
