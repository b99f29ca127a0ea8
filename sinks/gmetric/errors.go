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

import "errors"

// Error kinds returned by the package, use errors.Is to check for them
var (
	// ErrInvalidArgument is returned for empty metric name, unknown type, slope or protocol
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConnection is returned when the destination can't be resolved or the socket fails
	ErrConnection = errors.New("connection error")
	// ErrDecode is returned for truncated or malformed packets
	ErrDecode = errors.New("decode error")
	// ErrUnclassifiable is returned by Classify when no wire type fits the value
	ErrUnclassifiable = errors.New("unclassifiable value")
)
