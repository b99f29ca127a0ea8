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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlopeCodes(t *testing.T) {
	names := []string{"zero", "positive", "negative", "both", "unspecified"}

	for code, name := range names {
		slope, err := ParseSlope(name)
		require.NoError(t, err)
		assert.Equal(t, int32(code), slope.Code())
		assert.Equal(t, name, slope.String())

		fromCode, err := SlopeFromCode(int32(code))
		require.NoError(t, err)
		assert.Equal(t, slope, fromCode)
	}

	_, err := ParseSlope("derivative")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	for _, code := range []int32{-1, 5, 100} {
		_, err = SlopeFromCode(code)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestTypeNames(t *testing.T) {
	names := []string{"", "string", "uint16", "int16", "uint32", "int32", "float", "double", "timestamp"}

	for i, name := range names {
		typ, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, Type(i), typ)
		assert.Equal(t, name, typ.String())
	}

	for _, name := range []string{"int8", "uint8", "String", " "} {
		_, err := ParseType(name)
		assert.ErrorIs(t, err, ErrInvalidArgument, name)
	}

	assert.Equal(t, "Type(42)", Type(42).String())
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol("udp")
	require.NoError(t, err)
	assert.Equal(t, ProtocolUDP, p)

	p, err = ParseProtocol("multicast")
	require.NoError(t, err)
	assert.Equal(t, ProtocolMulticast, p)

	_, err = ParseProtocol("tcp")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
