package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/nola/internal/token"
)

// Save serializes instrs into spec.md §6's exact binary format:
//
//	u64 count
//	repeat count times:
//	  u16 opcode
//	  operand depending on opcode:
//	    PUSH_INT            -> i64
//	    PUSH_FLOAT          -> f32
//	    PUSH_STRING/VAR/ASSIGN -> u64 len, then len bytes (no NUL)
//	    PUSH_BOOL           -> u8 (0 or 1)
//	    others              -> no operand
func Save(instrs []Instruction) []byte {
	var buf bytes.Buffer
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(len(instrs)))
	buf.Write(countBuf[:])

	for _, ins := range instrs {
		var opBuf [2]byte
		binary.LittleEndian.PutUint16(opBuf[:], uint16(ins.Op))
		buf.Write(opBuf[:])

		switch {
		case ins.Op == token.PUSH_INT:
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], uint64(ins.IntOperand))
			buf.Write(b[:])
		case ins.Op == token.PUSH_FLOAT:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(ins.FloatOperand))
			buf.Write(b[:])
		case HasStringOperand(ins.Op):
			var lenBuf [8]byte
			binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(ins.StrOperand)))
			buf.Write(lenBuf[:])
			buf.WriteString(ins.StrOperand)
		case ins.Op == token.PUSH_BOOL:
			if ins.BoolOperand {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		}
	}
	return buf.Bytes()
}

// Load deserializes the format Save produces, returning a *CompileError on
// truncated or malformed input.
func Load(data []byte) ([]Instruction, error) {
	if len(data) < 8 {
		return nil, &CompileError{Msg: "bytecode truncated: missing instruction count"}
	}
	count := binary.LittleEndian.Uint64(data[:8])
	pos := 8

	out := make([]Instruction, 0, count)
	for i := uint64(0); i < count; i++ {
		if pos+2 > len(data) {
			return nil, &CompileError{Msg: fmt.Sprintf("bytecode truncated: missing opcode for instruction %d", i)}
		}
		op := token.Kind(binary.LittleEndian.Uint16(data[pos : pos+2]))
		pos += 2

		ins := Instruction{Op: op}
		switch {
		case op == token.PUSH_INT:
			if pos+8 > len(data) {
				return nil, &CompileError{Msg: fmt.Sprintf("bytecode truncated: missing int operand for instruction %d", i)}
			}
			ins.IntOperand = int64(binary.LittleEndian.Uint64(data[pos : pos+8]))
			pos += 8
		case op == token.PUSH_FLOAT:
			if pos+4 > len(data) {
				return nil, &CompileError{Msg: fmt.Sprintf("bytecode truncated: missing float operand for instruction %d", i)}
			}
			ins.FloatOperand = math.Float32frombits(binary.LittleEndian.Uint32(data[pos : pos+4]))
			pos += 4
		case HasStringOperand(op):
			if pos+8 > len(data) {
				return nil, &CompileError{Msg: fmt.Sprintf("bytecode truncated: missing string length for instruction %d", i)}
			}
			strLen := binary.LittleEndian.Uint64(data[pos : pos+8])
			pos += 8
			if pos+int(strLen) > len(data) {
				return nil, &CompileError{Msg: fmt.Sprintf("bytecode truncated: missing string bytes for instruction %d", i)}
			}
			ins.StrOperand = string(data[pos : pos+int(strLen)])
			pos += int(strLen)
		case op == token.PUSH_BOOL:
			if pos+1 > len(data) {
				return nil, &CompileError{Msg: fmt.Sprintf("bytecode truncated: missing bool operand for instruction %d", i)}
			}
			ins.BoolOperand = data[pos] != 0
			pos++
		}
		out = append(out, ins)
	}
	return out, nil
}
