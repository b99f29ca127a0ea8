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
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Client implements gmetric sink
type Client struct {
	options ClientOptions

	addr *net.UDPAddr
	conn *net.UDPConn

	// sendLock keeps metadata and value packets of one metric together
	sendLock sync.Mutex
	metaBuf  []byte
	dataBuf  []byte

	sentPackets, sendErrors int64
}

// NewClient creates new gmetric client
//
// Client sends packets to gmond at addr ("host:port"), host might resolve
// to IPv4 or IPv6 address.
//
// Client settings could be controlled via functions of type Option
func NewClient(addr string, options ...Option) (*Client, error) {
	c := &Client{
		options: ClientOptions{
			Protocol:     ProtocolUDP,
			MulticastTTL: DefaultMulticastTTL,
			Hostname:     DefaultHostname,
			Logger:       log.New(os.Stderr, DefaultLogPrefix, log.LstdFlags),
		},
	}

	for _, option := range options {
		option(&c.options)
	}

	var err error

	if c.options.Protocol != ProtocolUDP && c.options.Protocol != ProtocolMulticast {
		return nil, fmt.Errorf("%w: unsupported protocol %s", ErrInvalidArgument, c.options.Protocol)
	}

	c.addr, err = net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: error resolving %q: %s", ErrConnection, addr, err)
	}

	network := "udp4"
	if c.addr.IP.To4() == nil {
		network = "udp6"
	}

	c.conn, err = net.ListenUDP(network, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening socket: %s", ErrConnection, err)
	}

	if c.options.Protocol == ProtocolMulticast {
		if err = c.setMulticastTTL(network); err != nil {
			_ = c.conn.Close()
			return nil, fmt.Errorf("%w: error setting multicast TTL: %s", ErrConnection, err)
		}
	}

	return c, nil
}

func (c *Client) setMulticastTTL(network string) error {
	if network == "udp6" {
		return ipv6.NewPacketConn(c.conn).SetMulticastHopLimit(c.options.MulticastTTL)
	}

	return ipv4.NewPacketConn(c.conn).SetMulticastTTL(c.options.MulticastTTL)
}

// Close closes client socket
func (c *Client) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns resolved destination address
func (c *Client) RemoteAddr() net.Addr {
	return c.addr
}

// GetSentPackets returns number of packets sent during client lifecycle
func (c *Client) GetSentPackets() int64 {
	return atomic.LoadInt64(&c.sentPackets)
}

// GetSendErrors returns number of failed packet writes during client lifecycle
func (c *Client) GetSendErrors() int64 {
	return atomic.LoadInt64(&c.sendErrors)
}

// Send delivers metric as metadata packet followed by value packet
//
// There are no retries, first write error is returned.
func (c *Client) Send(m Metric) error {
	if err := m.Validate(); err != nil {
		return err
	}

	c.sendLock.Lock()
	defer c.sendLock.Unlock()

	var err error

	c.metaBuf, err = AppendMetadata(c.metaBuf[:0], &m, c.options.Hostname)
	if err != nil {
		return err
	}

	c.dataBuf = AppendValue(c.dataBuf[:0], &m, c.options.Hostname)

	if err = c.write(c.metaBuf); err != nil {
		return err
	}

	return c.write(c.dataBuf)
}

// SendValue sends value for the metric described by template
//
// If template has no type, it is picked with Classify.
func (c *Client) SendValue(name, value string, template Metric) error {
	m := template
	m.Name = name
	m.Value = value

	if m.Type == TypeUnset {
		var err error

		if m.Type, err = Classify(value); err != nil {
			return err
		}
	}

	return c.Send(m)
}

func (c *Client) write(buf []byte) error {
	_, err := c.conn.WriteToUDP(buf, c.addr)
	if err != nil {
		atomic.AddInt64(&c.sendErrors, 1)
		c.options.Logger.Printf("Error writing to socket: %s", err)

		return fmt.Errorf("%w: error sending to %s: %s", ErrConnection, c.addr, err)
	}

	atomic.AddInt64(&c.sentPackets, 1)

	return nil
}
