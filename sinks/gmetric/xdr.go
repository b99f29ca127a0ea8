package gmetric

/*

Copyright (c) 2017 Andrey Smirnov

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"encoding/binary"
	"fmt"
)

// appendInt32 appends XDR signed integer
func appendInt32(buf []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(buf, uint32(v))
}

// appendUint32 appends XDR unsigned integer
func appendUint32(buf []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(buf, v)
}

// appendString appends XDR string: length, bytes and zero padding up to 4-byte boundary
func appendString(buf []byte, s string) []byte {
	buf = appendUint32(buf, uint32(len(s)))
	buf = append(buf, s...)

	for pad := (4 - len(s)%4) % 4; pad > 0; pad-- {
		buf = append(buf, 0)
	}

	return buf
}

// xdrReader unpacks XDR primitives from the buffer
type xdrReader struct {
	buf []byte
	pos int
}

func (r *xdrReader) uint32() (uint32, error) {
	if len(r.buf)-r.pos < 4 {
		return 0, fmt.Errorf("%w: truncated integer at offset %d", ErrDecode, r.pos)
	}

	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4

	return v, nil
}

func (r *xdrReader) int32() (int32, error) {
	v, err := r.uint32()
	return int32(v), err
}

func (r *xdrReader) string() (string, error) {
	n, err := r.uint32()
	if err != nil {
		return "", err
	}

	// padded length, computed in 64 bits so huge prefixes can't wrap around
	padded := (uint64(n) + 3) &^ 3
	if uint64(len(r.buf)-r.pos) < padded {
		return "", fmt.Errorf("%w: string length %d exceeds remaining %d bytes at offset %d", ErrDecode, n, len(r.buf)-r.pos, r.pos)
	}

	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(padded)

	return s, nil
}

// done checks that the whole buffer was consumed
func (r *xdrReader) done() error {
	if r.pos < len(r.buf) {
		return fmt.Errorf("%w: %d unextracted bytes", ErrDecode, len(r.buf)-r.pos)
	}

	return nil
}
