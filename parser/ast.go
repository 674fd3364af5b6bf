// Package parser consumes a lexer.Lexer's token stream and produces a
// Program: an ordered sequence of statements, each carrying the source
// span it was parsed from.
package parser

import "github.com/lookbusy1344/c8asm/lexer"

// NodeKind tags the 40 statement variants of Table 1.
type NodeKind int

const (
	DeclareSprite NodeKind = iota
	DeclareLabel
	Nop
	Clear
	Return
	JumpInteger
	JumpLabel
	CallInteger
	CallLabel
	SkipEqualsInteger
	SkipNotEqualsInteger
	SkipEqualsRegister
	MoveRegisterInteger
	AddRegisterInteger
	MoveRegisterRegister
	Or
	And
	Xor
	AddRegisterRegister
	Subtract
	ShiftRight
	SubtractReverse
	ShiftLeft
	SkipNotEqualsRegister
	MoveIRegisterInteger
	MoveIRegisterSprite
	JumpRegister
	Random
	Draw
	SkipKeyPressed
	SkipKeyNotPressed
	MoveRegisterDelay
	WaitKeyPress
	MoveDelayRegister
	MoveSoundRegister
	AddIRegisterRegister
	Sprite
	Bcd
	Save
	Load
)

// Node is the payload of a Stmt: exactly the operand set its opcode
// requires. Zero-valued fields are simply unused for node kinds that don't
// need them (e.g. Ident is unused by Nop).
type Node struct {
	Kind NodeKind

	Ident string // DeclareSprite, DeclareLabel, JumpLabel, CallLabel, MoveIRegisterSprite
	Data  []byte // DeclareSprite

	X, Y, N uint8  // register operands and the Draw height nibble
	NN      uint8  // 8-bit immediate
	NNN     uint16 // 12-bit address/immediate (JumpInteger, CallInteger, MoveIRegisterInteger, JumpRegister)
}

// Stmt pairs a Node with the source span it was parsed from, plus any
// trailing end-of-line comment text (without the leading '#'), if the
// source line had one.
type Stmt struct {
	Span    lexer.Span
	Node    Node
	Comment string
}

// Program is an ordered sequence of statements; statement order equals
// source order.
type Program struct {
	Statements []Stmt
}
