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

// Packet tags
const (
	MetadataTag int32 = 128
	ValueTag    int32 = 128 + 5
)

const (
	valueFormat = "%s"
	groupKey    = "GROUP"
)

// Metric describes single metric event
type Metric struct {
	Name  string
	Value string
	Type  Type
	Units string
	Slope Slope
	// Tmax is max time in seconds between reports
	Tmax uint32
	// Dmax is lifetime of the metric in seconds, 0 means unlimited
	Dmax uint32
	// Group is optional, gmond shows the metric as no_group without it
	Group string
	// Spoof is optional "ip:hostname" to report the metric on behalf of
	Spoof string
}

// Validate checks that the metric could be sent
func (m *Metric) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: metric name must be non-empty", ErrInvalidArgument)
	}

	if m.Type == TypeUnset || !m.Type.valid() {
		return fmt.Errorf("%w: metric %q has invalid type %s", ErrInvalidArgument, m.Name, m.Type)
	}

	return m.validateSlope()
}

func (m *Metric) validateSlope() error {
	_, err := SlopeFromCode(m.Slope.Code())
	return err
}

func (m *Metric) host(hostname string) (string, int32) {
	if m.Spoof != "" {
		return m.Spoof, 1
	}

	return hostname, 0
}

// AppendMetadata appends metadata packet for the metric to buf
//
// hostname is used unless the metric is spoofed. Name is not checked here,
// TypeUnset is encoded as empty type name.
func AppendMetadata(buf []byte, m *Metric, hostname string) ([]byte, error) {
	if !m.Type.valid() {
		return buf, fmt.Errorf("%w: invalid type %s", ErrInvalidArgument, m.Type)
	}

	if err := m.validateSlope(); err != nil {
		return buf, err
	}

	host, spoofed := m.host(hostname)

	buf = appendInt32(buf, MetadataTag)
	buf = appendString(buf, host)
	buf = appendString(buf, m.Name)
	buf = appendInt32(buf, spoofed)
	buf = appendString(buf, m.Type.String())
	buf = appendString(buf, m.Name)
	buf = appendString(buf, m.Units)
	buf = appendInt32(buf, m.Slope.Code())
	buf = appendUint32(buf, m.Tmax)
	buf = appendUint32(buf, m.Dmax)

	if m.Group == "" {
		buf = appendInt32(buf, 0)
	} else {
		buf = appendInt32(buf, 1)
		buf = appendString(buf, groupKey)
		buf = appendString(buf, m.Group)
	}

	return buf, nil
}

// AppendValue appends value packet for the metric to buf
func AppendValue(buf []byte, m *Metric, hostname string) []byte {
	host, spoofed := m.host(hostname)

	buf = appendInt32(buf, ValueTag)
	buf = appendString(buf, host)
	buf = appendString(buf, m.Name)
	buf = appendInt32(buf, spoofed)
	buf = appendString(buf, valueFormat)
	buf = appendString(buf, m.Value)

	return buf
}

// Encode validates the metric and builds fresh metadata and value packets
//
// Packets are reported with DefaultHostname unless the metric is spoofed.
func Encode(m Metric) (metadata, value []byte, err error) {
	return encode(&m, DefaultHostname)
}

func encode(m *Metric, hostname string) (metadata, value []byte, err error) {
	if err = m.Validate(); err != nil {
		return nil, nil, err
	}

	metadata, err = AppendMetadata(nil, m, hostname)
	if err != nil {
		return nil, nil, err
	}

	return metadata, AppendValue(nil, m, hostname), nil
}

// Metadata is the decoded metadata packet
type Metadata struct {
	Host  string
	Name  string
	Spoof bool
	Type  Type
	// Val carries the second copy of the metric name, not the value
	Val   string
	Units string
	Slope Slope
	Tmax  uint32
	Dmax  uint32
	Group string
	// Extra holds all extra elements, including GROUP
	Extra map[string]string
}

// Fields returns metadata as field name to value mapping
func (md *Metadata) Fields() map[string]string {
	return map[string]string{
		"TYPE":  md.Type.String(),
		"NAME":  md.Name,
		"VAL":   md.Val,
		"UNITS": md.Units,
		"SLOPE": md.Slope.String(),
		"TMAX":  fmt.Sprint(md.Tmax),
		"DMAX":  fmt.Sprint(md.Dmax),
	}
}

// Decode parses metadata packet
func Decode(buf []byte) (*Metadata, error) {
	r := &xdrReader{buf: buf}
	md := &Metadata{}

	tag, err := r.int32()
	if err != nil {
		return nil, err
	}
	if tag != MetadataTag {
		return nil, fmt.Errorf("%w: unexpected packet tag %d", ErrDecode, tag)
	}

	if md.Host, md.Name, md.Spoof, err = decodeHeader(r); err != nil {
		return nil, err
	}

	typeName, err := r.string()
	if err != nil {
		return nil, err
	}
	if md.Type, err = ParseType(typeName); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}

	if md.Val, err = r.string(); err != nil {
		return nil, err
	}
	if md.Units, err = r.string(); err != nil {
		return nil, err
	}

	code, err := r.int32()
	if err != nil {
		return nil, err
	}
	if md.Slope, err = SlopeFromCode(code); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}

	if md.Tmax, err = r.uint32(); err != nil {
		return nil, err
	}
	if md.Dmax, err = r.uint32(); err != nil {
		return nil, err
	}

	count, err := r.uint32()
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < count; i++ {
		var key, val string

		if key, err = r.string(); err != nil {
			return nil, err
		}
		if val, err = r.string(); err != nil {
			return nil, err
		}

		if md.Extra == nil {
			md.Extra = make(map[string]string)
		}
		md.Extra[key] = val
		if key == groupKey {
			md.Group = val
		}
	}

	if err = r.done(); err != nil {
		return nil, err
	}

	return md, nil
}

// Value is the decoded value packet
type Value struct {
	Host   string
	Name   string
	Spoof  bool
	Format string
	Value  string
}

// DecodeValue parses value packet
func DecodeValue(buf []byte) (*Value, error) {
	r := &xdrReader{buf: buf}
	v := &Value{}

	tag, err := r.int32()
	if err != nil {
		return nil, err
	}
	if tag != ValueTag {
		return nil, fmt.Errorf("%w: unexpected packet tag %d", ErrDecode, tag)
	}

	if v.Host, v.Name, v.Spoof, err = decodeHeader(r); err != nil {
		return nil, err
	}
	if v.Format, err = r.string(); err != nil {
		return nil, err
	}
	if v.Value, err = r.string(); err != nil {
		return nil, err
	}

	if err = r.done(); err != nil {
		return nil, err
	}

	return v, nil
}

func decodeHeader(r *xdrReader) (host, name string, spoof bool, err error) {
	if host, err = r.string(); err != nil {
		return
	}
	if name, err = r.string(); err != nil {
		return
	}

	var flag int32
	if flag, err = r.int32(); err != nil {
		return
	}
	spoof = flag != 0

	return
}
