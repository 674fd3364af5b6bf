package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/parser"
)

// SymbolKind distinguishes a label from a sprite in a SymbolReport.
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolSprite
)

func (k SymbolKind) String() string {
	if k == SymbolSprite {
		return "sprite"
	}
	return "label"
}

// Symbol is one entry in a SymbolReport: a label or sprite's definition
// line and every line that references it, both in source order.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	DefLine    int // 0 if never declared
	UsageLines []int
}

// SymbolReport is a cross-reference of every label and sprite mentioned in
// a Program, sorted by name.
type SymbolReport struct {
	Symbols []Symbol
}

// Xref walks prog's statements once, recording each label/sprite's
// definition site and every statement that references it.
func Xref(prog *parser.Program, source string) *SymbolReport {
	sm := diag.NewSourceMap(source)
	byName := make(map[string]*Symbol)

	get := func(name string, kind SymbolKind) *Symbol {
		sym, ok := byName[name]
		if !ok {
			sym = &Symbol{Name: name, Kind: kind}
			byName[name] = sym
		}
		return sym
	}

	for _, stmt := range prog.Statements {
		line := sm.Line(stmt.Span.Lo)
		n := stmt.Node

		switch n.Kind {
		case parser.DeclareLabel:
			get(n.Ident, SymbolLabel).DefLine = line
		case parser.DeclareSprite:
			get(n.Ident, SymbolSprite).DefLine = line
		case parser.JumpLabel, parser.CallLabel:
			sym := get(n.Ident, SymbolLabel)
			sym.UsageLines = append(sym.UsageLines, line)
		case parser.MoveIRegisterSprite:
			sym := get(n.Ident, SymbolSprite)
			sym.UsageLines = append(sym.UsageLines, line)
		}
	}

	symbols := make([]Symbol, 0, len(byName))
	for _, sym := range byName {
		symbols = append(symbols, *sym)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i].Name < symbols[j].Name
	})

	return &SymbolReport{Symbols: symbols}
}

// String renders the report as plain text: one block per symbol, its
// definition line followed by each reference line.
func (r *SymbolReport) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("=======================\n\n")

	for _, sym := range r.Symbols {
		sb.WriteString(fmt.Sprintf("%-20s [%s]\n", sym.Name, sym.Kind))
		if sym.DefLine == 0 {
			sb.WriteString("  defined:    (undefined)\n")
		} else {
			sb.WriteString(fmt.Sprintf("  defined:    line %d\n", sym.DefLine))
		}
		if len(sym.UsageLines) == 0 {
			sb.WriteString("  referenced: (never)\n")
		} else {
			lines := make([]string, len(sym.UsageLines))
			for i, ln := range sym.UsageLines {
				lines[i] = fmt.Sprintf("%d", ln)
			}
			sb.WriteString(fmt.Sprintf("  referenced: line(s) %s\n", strings.Join(lines, ", ")))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
