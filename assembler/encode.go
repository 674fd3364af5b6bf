package assembler

import "github.com/lookbusy1344/c8asm/parser"

// encode produces the big-endian (high, low) byte pair for a single
// code-emitting statement, per Table 1's bit-packing rules. ok is false iff
// the statement referenced an undefined label or sprite, in which case a
// fatal diagnostic has already been reported and no bytes should be
// emitted.
func (a *Assembler) encode(stmt parser.Stmt, n parser.Node) (high, low byte, ok bool) {
	switch n.Kind {
	case parser.Nop:
		return 0x00, 0x00, true
	case parser.Clear:
		return 0x00, 0xE0, true
	case parser.Return:
		return 0x00, 0xEE, true

	case parser.JumpInteger:
		h, l := addrPair(0x10, n.NNN)
		return h, l, true
	case parser.JumpLabel:
		addr, ok := a.resolveLabel(stmt, n.Ident)
		if !ok {
			return 0, 0, false
		}
		h, l := addrPair(0x10, addr)
		return h, l, true

	case parser.CallInteger:
		h, l := addrPair(0x20, n.NNN)
		return h, l, true
	case parser.CallLabel:
		addr, ok := a.resolveLabel(stmt, n.Ident)
		if !ok {
			return 0, 0, false
		}
		h, l := addrPair(0x20, addr)
		return h, l, true

	case parser.SkipEqualsInteger:
		return 0x30 | n.X, n.NN, true
	case parser.SkipNotEqualsInteger:
		return 0x40 | n.X, n.NN, true
	case parser.SkipEqualsRegister:
		return 0x50 | n.X, n.Y << 4, true

	case parser.MoveRegisterInteger:
		return 0x60 | n.X, n.NN, true
	case parser.AddRegisterInteger:
		return 0x70 | n.X, n.NN, true

	case parser.MoveRegisterRegister:
		return 0x80 | n.X, n.Y<<4 | 0x0, true
	case parser.Or:
		return 0x80 | n.X, n.Y<<4 | 0x1, true
	case parser.And:
		return 0x80 | n.X, n.Y<<4 | 0x2, true
	case parser.Xor:
		return 0x80 | n.X, n.Y<<4 | 0x3, true
	case parser.AddRegisterRegister:
		return 0x80 | n.X, n.Y<<4 | 0x4, true
	case parser.Subtract:
		return 0x80 | n.X, n.Y<<4 | 0x5, true
	case parser.ShiftRight:
		return 0x80 | n.X, 0x06, true
	case parser.SubtractReverse:
		return 0x80 | n.X, n.Y<<4 | 0x7, true
	case parser.ShiftLeft:
		return 0x80 | n.X, 0x0E, true

	case parser.SkipNotEqualsRegister:
		return 0x90 | n.X, n.Y << 4, true

	case parser.MoveIRegisterInteger:
		h, l := addrPair(0xA0, n.NNN)
		return h, l, true
	case parser.MoveIRegisterSprite:
		addr, ok := a.resolveSprite(stmt, n.Ident)
		if !ok {
			return 0, 0, false
		}
		h, l := addrPair(0xA0, addr)
		return h, l, true

	case parser.JumpRegister:
		h, l := addrPair(0xB0, n.NNN)
		return h, l, true

	case parser.Random:
		return 0xC0 | n.X, n.NN, true
	case parser.Draw:
		return 0xD0 | n.X, n.Y<<4 | n.N, true

	case parser.SkipKeyPressed:
		return 0xE0 | n.X, 0x9E, true
	case parser.SkipKeyNotPressed:
		return 0xE0 | n.X, 0xA1, true

	case parser.MoveRegisterDelay:
		return 0xF0 | n.X, 0x07, true
	case parser.WaitKeyPress:
		return 0xF0 | n.X, 0x0A, true
	case parser.MoveDelayRegister:
		return 0xF0 | n.X, 0x15, true
	case parser.MoveSoundRegister:
		return 0xF0 | n.X, 0x18, true
	case parser.AddIRegisterRegister:
		return 0xF0 | n.X, 0x1E, true
	case parser.Sprite:
		return 0xF0 | n.X, 0x29, true
	case parser.Bcd:
		return 0xF0 | n.X, 0x33, true
	case parser.Save:
		return 0xF0 | n.X, 0x55, true
	case parser.Load:
		return 0xF0 | n.X, 0x65, true

	default:
		panic("assembler: unhandled node kind in encode")
	}
}

// addrPair packs a 12-bit address nnn into the opcodeClass|... high/low
// byte pair shared by the 1nnn/2nnn/Annn/Bnnn family.
func addrPair(opcodeClass byte, nnn uint16) (high, low byte) {
	high = opcodeClass | byte((nnn&0xF00)>>8)
	low = byte(nnn & 0xFF)
	return high, low
}
