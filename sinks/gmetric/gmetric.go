/*
Package gmetric implements a Ganglia gmetric sink: it encodes metrics into the
gmond 3.1 XDR wire format and delivers them over UDP (unicast or multicast).

Every metric is sent as two datagrams:

 * metadata packet (tag 128) declaring type, name, units, slope, tmax, dmax
   and an optional GROUP extra element
 * value packet (tag 133) carrying the current value formatted as a string

Packets are built with append-style XDR writers, so the client reuses its two
packet buffers between sends.

When no explicit type is given, Classify picks the narrowest integer type
which fits the value, or string for non-numeric values.

Ideas were borrowed from the following gmetric implementations:

 * gmetric.py by Nick Galbreath (statsite sink)
 * https://github.com/ganglia/monitor-core gmetric.c
 * https://github.com/jsipprell/ganglia

*/
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
