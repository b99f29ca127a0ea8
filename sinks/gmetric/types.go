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

import "fmt"

// Type is the gmetric value type declared in the metadata packet
type Type int

// Supported value types
//
// TypeUnset is encoded as empty type name, it is accepted by the packet writers
// only; Metric.Validate rejects it.
const (
	TypeUnset Type = iota
	TypeString
	TypeUint16
	TypeInt16
	TypeUint32
	TypeInt32
	TypeFloat
	TypeDouble
	TypeTimestamp
)

// String returns type name as it goes on the wire
func (t Type) String() string {
	switch t {
	case TypeUnset:
		return ""
	case TypeString:
		return "string"
	case TypeUint16:
		return "uint16"
	case TypeInt16:
		return "int16"
	case TypeUint32:
		return "uint32"
	case TypeInt32:
		return "int32"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeTimestamp:
		return "timestamp"
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) valid() bool {
	return t >= TypeUnset && t <= TypeTimestamp
}

// ParseType maps type name to Type
//
// Empty name maps to TypeUnset.
func ParseType(name string) (Type, error) {
	switch name {
	case "":
		return TypeUnset, nil
	case "string":
		return TypeString, nil
	case "uint16":
		return TypeUint16, nil
	case "int16":
		return TypeInt16, nil
	case "uint32":
		return TypeUint32, nil
	case "int32":
		return TypeInt32, nil
	case "float":
		return TypeFloat, nil
	case "double":
		return TypeDouble, nil
	case "timestamp":
		return TypeTimestamp, nil
	}

	return TypeUnset, fmt.Errorf("%w: unknown type %q", ErrInvalidArgument, name)
}

// Slope is the declared trend of the metric over time
type Slope int32

// Slope values, numeric value is the wire code
const (
	SlopeZero Slope = iota
	SlopePositive
	SlopeNegative
	SlopeBoth
	SlopeUnspecified
)

// String returns slope name
func (s Slope) String() string {
	switch s {
	case SlopeZero:
		return "zero"
	case SlopePositive:
		return "positive"
	case SlopeNegative:
		return "negative"
	case SlopeBoth:
		return "both"
	case SlopeUnspecified:
		return "unspecified"
	}

	return fmt.Sprintf("Slope(%d)", int32(s))
}

// Code returns wire code of the slope
func (s Slope) Code() int32 {
	return int32(s)
}

// ParseSlope maps slope name to Slope
func ParseSlope(name string) (Slope, error) {
	switch name {
	case "zero":
		return SlopeZero, nil
	case "positive":
		return SlopePositive, nil
	case "negative":
		return SlopeNegative, nil
	case "both":
		return SlopeBoth, nil
	case "unspecified":
		return SlopeUnspecified, nil
	}

	return SlopeBoth, fmt.Errorf("%w: unknown slope %q", ErrInvalidArgument, name)
}

// SlopeFromCode maps wire code to Slope
func SlopeFromCode(code int32) (Slope, error) {
	switch Slope(code) {
	case SlopeZero, SlopePositive, SlopeNegative, SlopeBoth, SlopeUnspecified:
		return Slope(code), nil
	}

	return SlopeBoth, fmt.Errorf("%w: unknown slope code %d", ErrInvalidArgument, code)
}
