// Package assembler is the two-pass code generator: pass 1 lays out labels
// and sprites against a virtual program counter, pass 2 emits opcodes and
// resolves the references pass 1 recorded.
package assembler

import (
	"fmt"

	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/parser"
)

// ProgramStart is the canonical CHIP-8 load address; byte 0 of the output
// file corresponds to this address.
const ProgramStart = 0x200

// Result is the finished output of assembling a Program: code bytes
// followed by sprite bytes, plus the symbol tables built along the way.
type Result struct {
	Code       []byte
	SpriteData []byte
	Labels     map[string]uint16
	Sprites    map[string]uint16
}

// Image concatenates code and sprite data into the final ROM byte vector,
// per spec: code precedes sprite data, no header, no padding, no trailer.
func (r *Result) Image() []byte {
	out := make([]byte, 0, len(r.Code)+len(r.SpriteData))
	out = append(out, r.Code...)
	out = append(out, r.SpriteData...)
	return out
}

// Assembler holds the mutable state threaded through both passes.
type Assembler struct {
	d       *diag.Diagnostic
	labels  map[string]uint16
	sprites map[string]uint16
}

// New creates an Assembler reporting through d.
func New(d *diag.Diagnostic) *Assembler {
	return &Assembler{
		d:       d,
		labels:  make(map[string]uint16),
		sprites: make(map[string]uint16),
	}
}

// Assemble runs both passes over prog and returns the assembled Result, or
// an error if any statement referenced an undefined label or sprite.
func (a *Assembler) Assemble(prog *parser.Program) (*Result, error) {
	codeSize := a.layout(prog)

	// Sprite addresses, like label addresses, must be known before pass 2
	// resolves references to them: spec.md requires forward sprite
	// references (e.g. `mov i, smiley` appearing before `$ smiley ...`) to
	// resolve exactly like forward label references. Since a sprite's
	// address only depends on codeSize and the sizes of sprites declared
	// earlier -- never on anything pass 2 computes -- the full sprite
	// table can be built in one more top-to-bottom walk right after pass
	// 1, before pass 2 ever needs to look anything up.
	a.registerSprites(prog, codeSize)

	code, spriteData := a.emit(prog, codeSize)

	if a.d.HadError() {
		return nil, fmt.Errorf("assembly failed")
	}

	return &Result{
		Code:       code,
		SpriteData: spriteData,
		Labels:     a.labels,
		Sprites:    a.sprites,
	}, nil
}

// layout is pass 1: walk statements maintaining a virtual PC, recording
// label addresses. DeclareLabel and DeclareSprite both roll the
// tentatively-advanced PC back by 2 because neither emits into the code
// segment; duplicate labels warn and the last declaration wins.
func (a *Assembler) layout(prog *parser.Program) int {
	var pc uint16
	skips := 0

	for _, stmt := range prog.Statements {
		pc += 2
		switch stmt.Node.Kind {
		case parser.DeclareLabel:
			id := stmt.Node.Ident
			if _, exists := a.labels[id]; exists {
				a.d.Warn(stmt.Span, fmt.Sprintf("label %q is already declared", id))
			}
			a.labels[id] = ProgramStart + pc - 2
			pc -= 2
			skips++
		case parser.DeclareSprite:
			pc -= 2
			skips++
		}
	}

	return (len(prog.Statements) - skips) * 2
}

// registerSprites walks the statements once more, in declaration order,
// recording each sprite's absolute address without yet touching the code
// stream. This is what lets pass 2 resolve a reference to a sprite
// declared later in the source.
func (a *Assembler) registerSprites(prog *parser.Program, codeSize int) {
	offset := 0
	for _, stmt := range prog.Statements {
		if stmt.Node.Kind != parser.DeclareSprite {
			continue
		}
		id := stmt.Node.Ident
		if _, exists := a.sprites[id]; exists {
			a.d.Warn(stmt.Span, fmt.Sprintf("sprite %q is already declared", id))
		}
		a.sprites[id] = uint16(ProgramStart + codeSize + offset)
		offset += len(stmt.Node.Data)
	}
}

// emit is pass 2: walk statements again, emitting opcodes and placing
// sprite data after the code segment.
func (a *Assembler) emit(prog *parser.Program, codeSize int) (code, spriteData []byte) {
	var pc uint16

	for _, stmt := range prog.Statements {
		pc += 2
		node := stmt.Node

		switch node.Kind {
		case parser.DeclareLabel:
			// Pass 2 already matches pass 1's layout; nothing to emit and
			// no PC rollback needed here.
		case parser.DeclareSprite:
			spriteData = append(spriteData, node.Data...)
			pc -= 2
		default:
			high, low, ok := a.encode(stmt, node)
			if ok {
				code = append(code, high, low)
			}
		}
	}

	return code, spriteData
}

func (a *Assembler) resolveLabel(stmt parser.Stmt, id string) (uint16, bool) {
	addr, ok := a.labels[id]
	if !ok {
		a.d.Error(stmt.Span, fmt.Sprintf("label %q is not declared", id))
		return 0, false
	}
	return addr, true
}

func (a *Assembler) resolveSprite(stmt parser.Stmt, id string) (uint16, bool) {
	addr, ok := a.sprites[id]
	if !ok {
		a.d.Error(stmt.Span, fmt.Sprintf("sprite %q is not declared", id))
		return 0, false
	}
	return addr, true
}
