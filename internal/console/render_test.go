package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/ai"
)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	c := New(strings.NewReader(""), &buf)
	return c.NewRenderer(), &buf
}

func textChunk(text string) *ai.ModelResponseChunk {
	return &ai.ModelResponseChunk{Content: []*ai.Part{ai.NewTextPart(text)}}
}

func toolChunk(name string, input map[string]any) *ai.ModelResponseChunk {
	return &ai.ModelResponseChunk{Content: []*ai.Part{{
		Kind:        ai.PartToolRequest,
		ToolRequest: &ai.ToolRequest{Name: name, Input: input},
	}}}
}

func TestRendererTextOnly(t *testing.T) {
	r, buf := newTestRenderer()
	ctx := context.Background()

	for _, text := range []string{"Hello", ", ", "world"} {
		if err := r.HandleChunk(ctx, textChunk(text)); err != nil {
			t.Fatalf("HandleChunk: %v", err)
		}
	}
	r.Finish()

	if got := r.Response(); got != "Hello, world" {
		t.Errorf("Response() = %q, want %q", got, "Hello, world")
	}
	if out := buf.String(); !strings.HasSuffix(out, "\n") {
		t.Errorf("output does not end with newline: %q", out)
	}
}

func TestRendererFinishPreservesExistingNewline(t *testing.T) {
	r, buf := newTestRenderer()
	if err := r.HandleChunk(context.Background(), textChunk("done\n")); err != nil {
		t.Fatalf("HandleChunk: %v", err)
	}
	r.Finish()
	if out := buf.String(); strings.HasSuffix(out, "\n\n") {
		t.Errorf("Finish added a second trailing newline: %q", out)
	}
}

func TestRendererEmptyTurn(t *testing.T) {
	r, buf := newTestRenderer()
	r.Finish()
	if buf.Len() != 0 {
		t.Errorf("empty turn produced output: %q", buf.String())
	}
}

func TestRendererToolNoticeAndCompletion(t *testing.T) {
	r, buf := newTestRenderer()
	ctx := context.Background()

	chunks := []*ai.ModelResponseChunk{
		toolChunk("get_team_members", map[string]any{"role_filter": "admin"}),
		textChunk("Your admins are Sarah and Marcus."),
	}
	for _, ch := range chunks {
		if err := r.HandleChunk(ctx, ch); err != nil {
			t.Fatalf("HandleChunk: %v", err)
		}
	}
	r.Finish()
	out := buf.String()

	notice := strings.Index(out, "🔧 Calling tool: get_team_members")
	arg := strings.Index(out, "role_filter: admin")
	done := strings.Index(out, "✓ Tool completed")
	answer := strings.Index(out, "Your admins are")

	if notice < 0 || arg < 0 || done < 0 || answer < 0 {
		t.Fatalf("missing expected output (notice=%d arg=%d done=%d answer=%d):\n%s", notice, arg, done, answer, out)
	}
	if !(notice < arg && arg < done && done < answer) {
		t.Errorf("output out of order (notice=%d arg=%d done=%d answer=%d):\n%s", notice, arg, done, answer, out)
	}
}

func TestRendererMultiplePendingTools(t *testing.T) {
	r, buf := newTestRenderer()
	ctx := context.Background()

	if err := r.HandleChunk(ctx, toolChunk("get_subscription_info", nil)); err != nil {
		t.Fatalf("HandleChunk: %v", err)
	}
	if err := r.HandleChunk(ctx, toolChunk("get_team_members", nil)); err != nil {
		t.Fatalf("HandleChunk: %v", err)
	}
	if err := r.HandleChunk(ctx, textChunk("Both done.")); err != nil {
		t.Fatalf("HandleChunk: %v", err)
	}
	r.Finish()

	if got := strings.Count(buf.String(), "✓ Tool completed"); got != 2 {
		t.Errorf("completion markers = %d, want 2:\n%s", got, buf.String())
	}
}

func TestRendererToolOnlyTurnFlushedByFinish(t *testing.T) {
	r, buf := newTestRenderer()
	if err := r.HandleChunk(context.Background(), toolChunk("get_subscription_info", nil)); err != nil {
		t.Fatalf("HandleChunk: %v", err)
	}
	r.Finish()
	if !strings.Contains(buf.String(), "✓ Tool completed") {
		t.Errorf("Finish did not flush pending tool completion:\n%s", buf.String())
	}
}

func TestRendererArgPreviewSorted(t *testing.T) {
	r, buf := newTestRenderer()
	err := r.HandleChunk(context.Background(), toolChunk("get_team_members", map[string]any{
		"role_filter":       "member",
		"department_filter": "engineering",
	}))
	if err != nil {
		t.Fatalf("HandleChunk: %v", err)
	}
	out := buf.String()
	dept := strings.Index(out, "department_filter: engineering")
	role := strings.Index(out, "role_filter: member")
	if dept < 0 || role < 0 || dept > role {
		t.Errorf("argument lines missing or unsorted (dept=%d role=%d):\n%s", dept, role, out)
	}
}

func TestTruncateValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"short string", "hello", "hello"},
		{"exactly at limit", strings.Repeat("a", 100), strings.Repeat("a", 100)},
		{"one over limit", strings.Repeat("a", 101), strings.Repeat("a", 100) + "..."},
		{"long string", strings.Repeat("x", 250), strings.Repeat("x", 100) + "..."},
		{"non-string value", 42, "42"},
		{"boolean value", true, "true"},
		{"multibyte runes", strings.Repeat("世", 150), strings.Repeat("世", 100) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateValue(tt.in); got != tt.want {
				t.Errorf("TruncateValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
