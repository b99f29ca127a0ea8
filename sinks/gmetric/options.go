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

// Default settings
const (
	DefaultPort         = 8649
	DefaultHostname     = "test"
	DefaultMulticastTTL = 20
	DefaultTmax         = 60
	DefaultLogPrefix    = "[GMETRIC] "
)

// TransportProtocol selects unicast or multicast delivery
type TransportProtocol int

// Supported protocols
const (
	ProtocolUDP TransportProtocol = iota
	ProtocolMulticast
)

func (p TransportProtocol) String() string {
	switch p {
	case ProtocolUDP:
		return "udp"
	case ProtocolMulticast:
		return "multicast"
	}

	return fmt.Sprintf("TransportProtocol(%d)", int(p))
}

// ParseProtocol maps protocol name ("udp" or "multicast") to TransportProtocol
func ParseProtocol(name string) (TransportProtocol, error) {
	switch name {
	case "udp":
		return ProtocolUDP, nil
	case "multicast":
		return ProtocolMulticast, nil
	}

	return ProtocolUDP, fmt.Errorf("%w: protocol must be one of udp, multicast, got %q", ErrInvalidArgument, name)
}

// SomeLogger is used by the client to report errors
type SomeLogger interface {
	Printf(format string, v ...interface{})
}

// ClientOptions are controlled by Option functions
type ClientOptions struct {
	// Protocol is either unicast UDP or multicast
	Protocol TransportProtocol

	// MulticastTTL is outbound TTL (hop limit for IPv6) in multicast mode
	MulticastTTL int

	// Hostname is reported in packets for metrics which are not spoofed
	Hostname string

	// Logger is used to log send errors
	Logger SomeLogger
}

// Option is type for option transport
type Option func(c *ClientOptions)

// Protocol selects unicast or multicast delivery
func Protocol(protocol TransportProtocol) Option {
	return func(c *ClientOptions) {
		c.Protocol = protocol
	}
}

// MulticastTTL sets outbound multicast TTL
//
// Default is 20, ignored for unicast
func MulticastTTL(ttl int) Option {
	return func(c *ClientOptions) {
		c.MulticastTTL = ttl
	}
}

// Hostname sets hostname reported for metrics which are not spoofed
//
// Default is "test", as gmond takes the actual host from the packet source address
func Hostname(hostname string) Option {
	return func(c *ClientOptions) {
		c.Hostname = hostname
	}
}

// Logger sets logger object that is used to report errors
func Logger(logger SomeLogger) Option {
	return func(c *ClientOptions) {
		c.Logger = logger
	}
}
