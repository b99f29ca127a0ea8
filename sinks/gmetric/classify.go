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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Classify picks wire type for the value when it wasn't given explicitly
//
// Non-integer values are strings, integers get the narrowest type
// among int32, int16, uint16 and uint32. Empty value and integers outside
// of [-2^31, 2^32) are ErrUnclassifiable.
func Classify(value string) (Type, error) {
	if value == "" {
		return TypeUnset, fmt.Errorf("%w: empty value", ErrUnclassifiable)
	}

	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return TypeUnset, fmt.Errorf("%w: %q is out of range", ErrUnclassifiable, value)
		}

		return TypeString, nil
	}

	switch {
	case v < math.MinInt32:
		return TypeUnset, fmt.Errorf("%w: %d is out of range", ErrUnclassifiable, v)
	case v < math.MinInt16:
		return TypeInt32, nil
	case v < 0:
		return TypeInt16, nil
	case v <= math.MaxUint16:
		return TypeUint16, nil
	case v <= math.MaxUint32:
		return TypeUint32, nil
	}

	return TypeUnset, fmt.Errorf("%w: %d is out of range", ErrUnclassifiable, v)
}
