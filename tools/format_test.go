package tools_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lookbusy1344/c8asm/config"
	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/parser"
	"github.com/lookbusy1344/c8asm/tools"
)

func mustParse(t *testing.T, src string) *parser.Program {
	t.Helper()
	var buf bytes.Buffer
	d := diag.New(src, &buf)
	prog, err := parser.Parse(src, d)
	if err != nil {
		t.Fatalf("parse error for %q: %v\n%s", src, err, buf.String())
	}
	return prog
}

func TestFormat_NormalizesSpacingAroundOperands(t *testing.T) {
	prog := mustParse(t, "mov v0, 0x2A\n")
	got := tools.Format(prog, config.Default())
	if !strings.Contains(got, "mov v0, 0x2A") {
		t.Errorf("Format output = %q, missing normalized mov line", got)
	}
}

func TestFormat_LabelOnItsOwnLine(t *testing.T) {
	prog := mustParse(t, "end:\ncls\n")
	got := tools.Format(prog, config.Default())
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "end:" {
		t.Errorf("first line = %q, want %q", lines[0], "end:")
	}
}

func TestFormat_SpriteDeclaration(t *testing.T) {
	prog := mustParse(t, "$ smiley 0xAA 0x55\n")
	got := tools.Format(prog, config.Default())
	if !strings.Contains(got, "$ smiley 0xAA 0x55") {
		t.Errorf("Format output = %q, missing sprite declaration", got)
	}
}

func TestFormat_IsIdempotent(t *testing.T) {
	prog := mustParse(t, "mov v0, 0x2A\nadd v0, 1\n")
	first := tools.Format(prog, config.Default())

	reparsed := mustParse(t, first)
	second := tools.Format(reparsed, config.Default())

	if first != second {
		t.Errorf("Format is not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFormat_AlignsTrailingComments(t *testing.T) {
	prog := mustParse(t, "nop # short\nmov v0, 0x2A # longer line\n")
	cfg := config.Default()
	cfg.Format.AlignComments = true
	got := tools.Format(prog, cfg)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), got)
	}
	col0 := strings.Index(lines[0], "#")
	col1 := strings.Index(lines[1], "#")
	if col0 == -1 || col1 == -1 {
		t.Fatalf("expected both lines to carry a comment: %q", lines)
	}
	if col0 != col1 {
		t.Errorf("comments not aligned: line 0 at column %d, line 1 at column %d (%q)", col0, col1, lines)
	}
}

func TestFormat_CommentsNotAlignedWhenDisabled(t *testing.T) {
	prog := mustParse(t, "nop # short\nmov v0, 0x2A # longer line\n")
	cfg := config.Default()
	cfg.Format.AlignComments = false
	got := tools.Format(prog, cfg)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// Default IndentWidth is 1, so each code line starts with one space.
	if lines[0] != " nop # short" {
		t.Errorf("line 0 = %q, want %q", lines[0], " nop # short")
	}
	if lines[1] != " mov v0, 0x2A # longer line" {
		t.Errorf("line 1 = %q, want %q", lines[1], " mov v0, 0x2A # longer line")
	}
}

func TestFormat_IsIdempotentWithComments(t *testing.T) {
	cfg := config.Default()
	cfg.Format.AlignComments = true
	prog := mustParse(t, "nop # short\nmov v0, 0x2A # longer line\n")
	first := tools.Format(prog, cfg)

	reparsed := mustParse(t, first)
	second := tools.Format(reparsed, cfg)

	if first != second {
		t.Errorf("Format is not idempotent with comments:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFormat_StandaloneCommentLineDoesNotLeakOntoNextStatement(t *testing.T) {
	prog := mustParse(t, "nop\n# a standalone comment\ncls\n")
	got := tools.Format(prog, config.Default())
	if strings.Contains(got, "cls #") {
		t.Errorf("standalone comment leaked onto the following statement: %q", got)
	}
}
