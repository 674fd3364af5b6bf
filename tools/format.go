// Package tools holds utilities that operate on an already-parsed Program
// without ever running the two-pass assembler: a canonical source
// formatter, a static linter, and a symbol cross-referencer.
package tools

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/c8asm/config"
	"github.com/lookbusy1344/c8asm/parser"
)

// mnemonicText is the canonical concrete-syntax prefix rendered for each
// NodeKind, mirroring Table 1 in reverse.
var mnemonicText = map[parser.NodeKind]string{
	parser.Nop:                   "nop",
	parser.Clear:                 "cls",
	parser.Return:                "ret",
	parser.JumpInteger:           "jmp",
	parser.JumpLabel:             "jmp",
	parser.CallInteger:           "call",
	parser.CallLabel:             "call",
	parser.SkipEqualsInteger:     "se",
	parser.SkipEqualsRegister:    "se",
	parser.SkipNotEqualsInteger:  "sne",
	parser.SkipNotEqualsRegister: "sne",
	parser.MoveRegisterInteger:   "mov",
	parser.MoveRegisterRegister:  "mov",
	parser.MoveRegisterDelay:     "mov",
	parser.MoveDelayRegister:     "mov",
	parser.MoveSoundRegister:     "mov",
	parser.MoveIRegisterInteger:  "mov",
	parser.MoveIRegisterSprite:   "mov",
	parser.AddRegisterInteger:    "add",
	parser.AddRegisterRegister:   "add",
	parser.AddIRegisterRegister:  "add",
	parser.Or:                    "or",
	parser.And:                   "and",
	parser.Xor:                   "xor",
	parser.Subtract:              "sub",
	parser.ShiftRight:            "shr",
	parser.SubtractReverse:       "subn",
	parser.ShiftLeft:             "shl",
	parser.JumpRegister:          "jmpr",
	parser.Random:                "rnd",
	parser.Draw:                  "drw",
	parser.SkipKeyPressed:        "skp",
	parser.SkipKeyNotPressed:     "sknp",
	parser.WaitKeyPress:          "wait",
	parser.Sprite:                "spr",
	parser.Bcd:                   "bcd",
	parser.Save:                  "save",
	parser.Load:                  "load",
}

// Format renders prog back into its canonical textual form: normalized
// mnemonic case, a single space after each comma, and label/sprite
// declarations on their own line. Only trailing end-of-line comments
// survive (a standalone comment-only line has nothing to attach to, since
// the parser only threads a comment onto the statement it immediately
// trails); when cfg.Format.AlignComments is set, every surviving comment is
// padded out to the same column so they line up down the page, otherwise
// each is rendered right after its statement with a single separating
// space. Format is idempotent on already-canonical source.
func Format(prog *parser.Program, cfg *config.Config) string {
	if cfg == nil {
		cfg = config.Default()
	}
	indent := strings.Repeat(" ", cfg.Format.IndentWidth)

	lines := make([]string, len(prog.Statements))
	comments := make([]string, len(prog.Statements))
	commentCol := 0
	for i, stmt := range prog.Statements {
		lines[i] = formatStmt(stmt, indent)
		if stmt.Comment == "" {
			continue
		}
		comments[i] = "# " + stmt.Comment
		if cfg.Format.AlignComments && len(lines[i])+1 > commentCol {
			commentCol = len(lines[i]) + 1
		}
	}

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(line)
		if comments[i] != "" {
			if cfg.Format.AlignComments {
				sb.WriteString(strings.Repeat(" ", commentCol-len(line)))
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString(comments[i])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatStmt(stmt parser.Stmt, indent string) string {
	n := stmt.Node

	switch n.Kind {
	case parser.DeclareLabel:
		return n.Ident + ":"
	case parser.DeclareSprite:
		parts := make([]string, 0, len(n.Data)+1)
		parts = append(parts, "$", n.Ident)
		for _, b := range n.Data {
			parts = append(parts, fmt.Sprintf("0x%02X", b))
		}
		return strings.Join(parts, " ")
	}

	mnemonic := mnemonicText[n.Kind]
	operands := formatOperands(n)
	if operands == "" {
		return indent + mnemonic
	}
	return indent + mnemonic + " " + operands
}

func formatOperands(n parser.Node) string {
	reg := func(r uint8) string { return fmt.Sprintf("v%d", r) }

	switch n.Kind {
	case parser.Nop, parser.Clear, parser.Return:
		return ""
	case parser.JumpInteger, parser.CallInteger:
		return fmt.Sprintf("0x%X", n.NNN)
	case parser.JumpLabel, parser.CallLabel, parser.MoveIRegisterSprite:
		return n.Ident
	case parser.SkipEqualsInteger, parser.SkipNotEqualsInteger, parser.MoveRegisterInteger,
		parser.AddRegisterInteger, parser.Random:
		return fmt.Sprintf("%s, 0x%02X", reg(n.X), n.NN)
	case parser.SkipEqualsRegister, parser.SkipNotEqualsRegister, parser.MoveRegisterRegister,
		parser.Or, parser.And, parser.Xor, parser.AddRegisterRegister, parser.Subtract, parser.SubtractReverse:
		return fmt.Sprintf("%s, %s", reg(n.X), reg(n.Y))
	case parser.ShiftRight, parser.ShiftLeft, parser.SkipKeyPressed, parser.SkipKeyNotPressed,
		parser.WaitKeyPress, parser.Sprite, parser.Bcd, parser.Save, parser.Load:
		return reg(n.X)
	case parser.MoveRegisterDelay:
		return fmt.Sprintf("%s, dt", reg(n.X))
	case parser.MoveDelayRegister:
		return fmt.Sprintf("dt, %s", reg(n.X))
	case parser.MoveSoundRegister:
		return fmt.Sprintf("st, %s", reg(n.X))
	case parser.MoveIRegisterInteger:
		return fmt.Sprintf("i, 0x%X", n.NNN)
	case parser.AddIRegisterRegister:
		return fmt.Sprintf("i, %s", reg(n.X))
	case parser.JumpRegister:
		return fmt.Sprintf("0x%X", n.NNN)
	case parser.Draw:
		return fmt.Sprintf("%s, %s, %d", reg(n.X), reg(n.Y), n.N)
	default:
		return ""
	}
}
