package console

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/firebase/genkit/go/ai"
)

// maxArgDisplayLen is the longest tool-argument value shown in a notice;
// anything longer is cut and suffixed with an ellipsis.
const maxArgDisplayLen = 100

// Renderer turns the chunk stream of a single assistant turn into terminal
// output, in arrival order:
//
//   - reasoning text, dimmed and italicized
//   - a tool-invocation notice (name plus truncated argument preview)
//     immediately before the tool executes
//   - a completion marker once the tool has finished
//   - answer tokens as they arrive
//
// Genkit only resumes the model after executing the tools a turn requested,
// so the next chunk following pending tool notices doubles as the
// completion signal. Finish guarantees the trailing newline.
type Renderer struct {
	out    io.Writer
	styles Styles

	pendingTools int
	response     strings.Builder
}

// HandleChunk is the assistant.StreamCallback for this turn.
func (r *Renderer) HandleChunk(_ context.Context, chunk *ai.ModelResponseChunk) error {
	for _, part := range chunk.Content {
		switch {
		case part.IsToolRequest():
			r.printToolNotice(part.ToolRequest)
			r.pendingTools++

		case part.IsReasoning():
			r.completePendingTools()
			if part.Text != "" {
				fmt.Fprint(r.out, r.styles.Thinking.Render(part.Text))
			}

		case part.IsText():
			r.completePendingTools()
			if part.Text != "" {
				fmt.Fprint(r.out, part.Text)
				r.response.WriteString(part.Text)
			}
		}
	}
	return nil
}

// Finish flushes any outstanding tool completions and guarantees the
// response ends with a newline. Call once after the stream completes.
func (r *Renderer) Finish() {
	r.completePendingTools()
	if text := r.response.String(); text != "" && !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(r.out)
	}
}

// Response returns the accumulated answer text.
func (r *Renderer) Response() string {
	return r.response.String()
}

func (r *Renderer) printToolNotice(req *ai.ToolRequest) {
	fmt.Fprintf(r.out, "\n\n%s\n", r.styles.Tool.Render("🔧 Calling tool: "+req.Name))
	for _, kv := range argPreview(req.Input) {
		fmt.Fprintf(r.out, "   %s\n", r.styles.Tool.Render(kv))
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) completePendingTools() {
	for ; r.pendingTools > 0; r.pendingTools-- {
		fmt.Fprintf(r.out, "%s\n\n", r.styles.Tool.Render("✓ Tool completed"))
	}
}

// argPreview renders tool arguments as "key: value" lines with long values
// truncated. Keys are sorted for deterministic output.
func argPreview(input any) []string {
	args, ok := input.(map[string]any)
	if !ok || len(args) == 0 {
		return nil
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, TruncateValue(args[k])))
	}
	return lines
}

// TruncateValue renders a tool-argument value for display. Values whose
// string form exceeds maxArgDisplayLen characters show exactly the first
// maxArgDisplayLen characters followed by an ellipsis; shorter values are
// unchanged.
func TruncateValue(v any) string {
	s := fmt.Sprintf("%v", v)
	runes := []rune(s)
	if len(runes) <= maxArgDisplayLen {
		return s
	}
	return string(runes[:maxArgDisplayLen]) + "..."
}
