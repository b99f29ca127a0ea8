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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MaxLineSize limits length of single input line
const MaxLineSize = 16 * 1024 * 1024

// Sample is single "name|value|timestamp" input line
type Sample struct {
	Name      string
	Value     string
	Timestamp string
}

// ParseLine parses input line
//
// ok is false for blank lines.
func ParseLine(line string) (sample Sample, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}

	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		err = fmt.Errorf("%w: expected name|value|timestamp, got %q", ErrInvalidArgument, line)
		return
	}

	return Sample{Name: parts[0], Value: parts[1], Timestamp: parts[2]}, true, nil
}

// ReadSamples reads all samples from r, one per line
func ReadSamples(r io.Reader) ([]Sample, error) {
	var samples []Sample

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	for scanner.Scan() {
		sample, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, err
		}

		if ok {
			samples = append(samples, sample)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return samples, nil
}
