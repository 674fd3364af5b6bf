package tools

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/lookbusy1344/c8asm/config"
	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/parser"
)

// IssueLevel distinguishes a lint finding that should fail the build from
// one that's merely informational.
type IssueLevel int

const (
	IssueWarning IssueLevel = iota
	IssueError
)

func (lv IssueLevel) String() string {
	if lv == IssueError {
		return "error"
	}
	return "warning"
}

// Issue is a single lint finding.
type Issue struct {
	Level   IssueLevel
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Level, i.Message)
}

// Lint runs the static checks that don't require running the assembler:
// duplicate label/sprite declarations, and (per cfg) declared-but-unused
// labels and sprites.
func Lint(prog *parser.Program, source string, cfg *config.Config) []Issue {
	if cfg == nil {
		cfg = config.Default()
	}
	sm := diag.NewSourceMap(source)

	var issues []Issue

	labelDefs := make(map[string]int)   // name -> last-declared line
	spriteDefs := make(map[string]int)
	labelUses := make(map[string]bool)
	spriteUses := make(map[string]bool)

	for _, stmt := range prog.Statements {
		line := sm.Line(stmt.Span.Lo)
		n := stmt.Node

		switch n.Kind {
		case parser.DeclareLabel:
			if _, exists := labelDefs[n.Ident]; exists {
				issues = append(issues, Issue{
					Level:   IssueWarning,
					Line:    line,
					Message: fmt.Sprintf("label %q is already declared", n.Ident),
				})
			}
			labelDefs[n.Ident] = line
		case parser.DeclareSprite:
			if _, exists := spriteDefs[n.Ident]; exists {
				issues = append(issues, Issue{
					Level:   IssueWarning,
					Line:    line,
					Message: fmt.Sprintf("sprite %q is already declared", n.Ident),
				})
			}
			spriteDefs[n.Ident] = line
		case parser.JumpLabel, parser.CallLabel:
			labelUses[n.Ident] = true
		case parser.MoveIRegisterSprite:
			spriteUses[n.Ident] = true
		}
	}

	if cfg.Lint.WarnUnusedLabels {
		for _, name := range unusedNames(labelDefs, labelUses) {
			issues = append(issues, Issue{
				Level:   IssueWarning,
				Line:    labelDefs[name],
				Message: fmt.Sprintf("label %q is declared but never referenced", name),
			})
		}
	}
	if cfg.Lint.WarnUnusedSprites {
		for _, name := range unusedNames(spriteDefs, spriteUses) {
			issues = append(issues, Issue{
				Level:   IssueWarning,
				Line:    spriteDefs[name],
				Message: fmt.Sprintf("sprite %q is declared but never referenced", name),
			})
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Line < issues[j].Line
	})

	return issues
}

// unusedNames returns the names in defs that have no entry in uses, sorted
// for deterministic output.
func unusedNames(defs map[string]int, uses map[string]bool) []string {
	names := lo.Filter(lo.Keys(defs), func(name string, _ int) bool {
		return !uses[name]
	})
	sort.Strings(names)
	return names
}

// HasErrors reports whether issues contains any IssueError-level finding.
func HasErrors(issues []Issue) bool {
	return lo.SomeBy(issues, func(i Issue) bool { return i.Level == IssueError })
}
