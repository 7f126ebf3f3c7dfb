// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// MaxVarIntPayload is the maximum payload size for a variable length
	// integer.
	MaxVarIntPayload = 9
)

// littleEndian is a convenience variable since binary.LittleEndian is quite
// long.
var littleEndian = binary.LittleEndian

// MessageError describes an issue with a message.  An example of some
// potential issues are messages from the wrong merit network, invalid
// messages, and exceeding allowed limits.
type MessageError struct {
	Func        string // Function name
	Description string // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%v: %v", e.Func, e.Description)
	}
	return e.Description
}

// messageError creates a MessageError given a set of arguments.
func messageError(f string, desc string) *MessageError {
	return &MessageError{Func: f, Description: desc}
}

// readByte reads a single byte from r.
func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// writeByte writes a single byte to w.
func writeByte(w io.Writer, val byte) error {
	b := [1]byte{val}
	_, err := w.Write(b[:])
	return err
}

// readUint16 reads a little endian uint16 from r.
func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint16(b[:]), nil
}

// writeUint16 writes a little endian uint16 to w.
func writeUint16(w io.Writer, val uint16) error {
	var b [2]byte
	littleEndian.PutUint16(b[:], val)
	_, err := w.Write(b[:])
	return err
}

// readUint32 reads a little endian uint32 from r.
func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(b[:]), nil
}

// writeUint32 writes a little endian uint32 to w.
func writeUint32(w io.Writer, val uint32) error {
	var b [4]byte
	littleEndian.PutUint32(b[:], val)
	_, err := w.Write(b[:])
	return err
}

// readUint64 reads a little endian uint64 from r.
func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint64(b[:]), nil
}

// writeUint64 writes a little endian uint64 to w.
func writeUint64(w io.Writer, val uint64) error {
	var b [8]byte
	littleEndian.PutUint64(b[:], val)
	_, err := w.Write(b[:])
	return err
}

// readHash reads a hash from r.
func readHash(r io.Reader, hash *chainhash.Hash) error {
	_, err := io.ReadFull(r, hash[:])
	return err
}

// writeHash writes a hash to w.
func writeHash(w io.Writer, hash *chainhash.Hash) error {
	_, err := w.Write(hash[:])
	return err
}

// readTimestamp reads a unix timestamp encoded as a little endian uint32
// from r.
func readTimestamp(r io.Reader) (time.Time, error) {
	secs, err := readUint32(r)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0), nil
}

// writeTimestamp writes a unix timestamp encoded as a little endian uint32
// to w.  The sub-second precision of the passed time is discarded since the
// wire format does not support it.
func writeTimestamp(w io.Writer, t time.Time) error {
	return writeUint32(w, uint32(t.Unix()))
}

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64.
func ReadVarInt(r io.Reader, pver uint32) (uint64, error) {
	discriminant, err := readByte(r)
	if err != nil {
		return 0, err
	}

	var rv uint64
	switch discriminant {
	case 0xff:
		sv, err := readUint64(r)
		if err != nil {
			return 0, err
		}
		rv = sv

		// The encoding is not canonical if the value could have been
		// encoded using fewer bytes.
		min := uint64(0x100000000)
		if rv < min {
			return 0, messageError("ReadVarInt", fmt.Sprintf(
				"non-canonical varint %x - discriminant %x must "+
					"encode a value greater than %x", rv, discriminant,
				min-1))
		}

	case 0xfe:
		sv, err := readUint32(r)
		if err != nil {
			return 0, err
		}
		rv = uint64(sv)

		min := uint64(0x10000)
		if rv < min {
			return 0, messageError("ReadVarInt", fmt.Sprintf(
				"non-canonical varint %x - discriminant %x must "+
					"encode a value greater than %x", rv, discriminant,
				min-1))
		}

	case 0xfd:
		sv, err := readUint16(r)
		if err != nil {
			return 0, err
		}
		rv = uint64(sv)

		min := uint64(0xfd)
		if rv < min {
			return 0, messageError("ReadVarInt", fmt.Sprintf(
				"non-canonical varint %x - discriminant %x must "+
					"encode a value greater than %x", rv, discriminant,
				min-1))
		}

	default:
		rv = uint64(discriminant)
	}

	return rv, nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, pver uint32, val uint64) error {
	if val < 0xfd {
		return writeByte(w, byte(val))
	}

	if val <= 0xffff {
		if err := writeByte(w, 0xfd); err != nil {
			return err
		}
		return writeUint16(w, uint16(val))
	}

	if val <= 0xffffffff {
		if err := writeByte(w, 0xfe); err != nil {
			return err
		}
		return writeUint32(w, uint32(val))
	}

	if err := writeByte(w, 0xff); err != nil {
		return err
	}
	return writeUint64(w, val)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= 0xffff {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= 0xffffffff {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// ReadVarBytes reads a variable length byte array.  A byte array is encoded
// as a varInt containing the length of the array followed by the bytes
// themselves.  An error is returned if the length is greater than the
// passed maxAllowed parameter which helps protect against memory exhaustion
// attacks and forced panics through malformed messages.  The fieldName
// parameter is only used for the error message so it provides more context in
// the error.
func ReadVarBytes(r io.Reader, pver uint32, maxAllowed uint32,
	fieldName string) ([]byte, error) {

	count, err := ReadVarInt(r, pver)
	if err != nil {
		return nil, err
	}

	// Prevent byte array larger than the max message size.  It would
	// be possible to cause memory exhaustion and panics without a sane
	// upper bound on this count.
	if count > uint64(maxAllowed) {
		return nil, messageError("ReadVarBytes", fmt.Sprintf(
			"%s is larger [%d] than the max allowed size [%d]",
			fieldName, count, maxAllowed))
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes serializes a variable length byte array to w as a varInt
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, pver uint32, bytes []byte) error {
	slen := uint64(len(bytes))
	if err := WriteVarInt(w, pver, slen); err != nil {
		return err
	}

	_, err := w.Write(bytes)
	return err
}
