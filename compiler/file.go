/*
File    : monkey/compiler/file.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package compiler

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/akashmaji946/monkey/code"
	"github.com/akashmaji946/monkey/objects"
)

// Bytecode is never persisted across runs in the baseline language
// (spec.md §6), so this is an optional, additive capability: it is the
// one place in the module where a bare standard-library encoding is
// the right tool, since the wire format is a small fixed-layout binary
// framing with no textual structure, parser, or schema evolution story
// that would justify reaching for a serialization library.
const (
	magicNumber     uint32 = 0x4d4f4e4b // "MONK"
	bytecodeVersion uint32 = 1

	tagInteger          byte = 0x01
	tagBoolean          byte = 0x02
	tagString           byte = 0x03
	tagCompiledFunction byte = 0x04
	tagNull             byte = 0x05
)

// WriteTo encodes bc as `u32 magic, u32 version, u32 n_consts,
// <consts>, u32 n_bytes, <bytes>` and writes it to w.
func (bc *Bytecode) WriteTo(w io.Writer) error {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.BigEndian, magicNumber); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.BigEndian, bytecodeVersion); err != nil {
		return err
	}

	if err := binary.Write(&buf, binary.BigEndian, uint32(len(bc.Constants))); err != nil {
		return err
	}
	for _, c := range bc.Constants {
		if err := writeConstant(&buf, c); err != nil {
			return err
		}
	}

	if err := binary.Write(&buf, binary.BigEndian, uint32(len(bc.Instructions))); err != nil {
		return err
	}
	if _, err := buf.Write(bc.Instructions); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadBytecode decodes a Bytecode value previously written by WriteTo.
func ReadBytecode(r io.Reader) (*Bytecode, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, err
	}
	if magic != magicNumber {
		return nil, fmt.Errorf("bad magic number: %#x", magic)
	}
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, err
	}
	if version != bytecodeVersion {
		return nil, fmt.Errorf("unsupported bytecode version: %d", version)
	}

	var nConsts uint32
	if err := binary.Read(r, binary.BigEndian, &nConsts); err != nil {
		return nil, err
	}

	constants := make([]objects.MonkeyObject, nConsts)
	for i := range constants {
		c, err := readConstant(r)
		if err != nil {
			return nil, err
		}
		constants[i] = c
	}

	var nBytes uint32
	if err := binary.Read(r, binary.BigEndian, &nBytes); err != nil {
		return nil, err
	}

	instructions := make(code.Instructions, nBytes)
	if _, err := io.ReadFull(r, instructions); err != nil {
		return nil, err
	}

	return &Bytecode{Instructions: instructions, Constants: constants}, nil
}

func writeConstant(buf *bytes.Buffer, obj objects.MonkeyObject) error {
	switch obj := obj.(type) {
	case *objects.Integer:
		buf.WriteByte(tagInteger)
		return binary.Write(buf, binary.BigEndian, obj.Value)

	case *objects.Boolean:
		buf.WriteByte(tagBoolean)
		var b byte
		if obj.Value {
			b = 1
		}
		return buf.WriteByte(b)

	case *objects.String:
		buf.WriteByte(tagString)
		if err := binary.Write(buf, binary.BigEndian, uint32(len(obj.Value))); err != nil {
			return err
		}
		_, err := buf.WriteString(obj.Value)
		return err

	case *objects.CompiledFunction:
		buf.WriteByte(tagCompiledFunction)
		if err := binary.Write(buf, binary.BigEndian, uint32(len(obj.Instructions))); err != nil {
			return err
		}
		if _, err := buf.Write(obj.Instructions); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.BigEndian, uint16(obj.NumLocals)); err != nil {
			return err
		}
		return binary.Write(buf, binary.BigEndian, uint16(obj.NumParameters))

	case *objects.Null:
		return buf.WriteByte(tagNull)

	default:
		return fmt.Errorf("constant type %T cannot be persisted", obj)
	}
}

func readConstant(r io.Reader) (objects.MonkeyObject, error) {
	tag := make([]byte, 1)
	if _, err := io.ReadFull(r, tag); err != nil {
		return nil, err
	}

	switch tag[0] {
	case tagInteger:
		var v int64
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		return &objects.Integer{Value: v}, nil

	case tagBoolean:
		b := make([]byte, 1)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		return &objects.Boolean{Value: b[0] != 0}, nil

	case tagString:
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		s := make([]byte, n)
		if _, err := io.ReadFull(r, s); err != nil {
			return nil, err
		}
		return &objects.String{Value: string(s)}, nil

	case tagCompiledFunction:
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		ins := make(code.Instructions, n)
		if _, err := io.ReadFull(r, ins); err != nil {
			return nil, err
		}

		var numLocals, numParams uint16
		if err := binary.Read(r, binary.BigEndian, &numLocals); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &numParams); err != nil {
			return nil, err
		}

		return &objects.CompiledFunction{
			Instructions:  ins,
			NumLocals:     int(numLocals),
			NumParameters: int(numParams),
		}, nil

	case tagNull:
		return &objects.Null{}, nil

	default:
		return nil, fmt.Errorf("unknown constant tag: %#x", tag[0])
	}
}
