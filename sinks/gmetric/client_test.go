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
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/ipv4"
)

func setupListener(t *testing.T) (*net.UDPConn, chan []byte) {
	inSocket, err := net.ListenUDP("udp4", &net.UDPAddr{
		IP: net.IPv4(127, 0, 0, 1),
	})
	require.NoError(t, err)

	received := make(chan []byte, 1024)

	go func() {
		for {
			buf := make([]byte, 1500)

			n, err := inSocket.Read(buf)
			if err != nil {
				return
			}

			received <- buf[0:n]
		}

	}()

	return inSocket, received
}

func receive(t *testing.T, received chan []byte) []byte {
	select {
	case buf := <-received:
		return buf
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for packet")
	}

	return nil
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

func TestWrongAddress(t *testing.T) {
	_, err := NewClient("BOOM:BOOM")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestWrongProtocol(t *testing.T) {
	_, err := NewClient("127.0.0.1:8649", Protocol(TransportProtocol(7)))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSend(t *testing.T) {
	inSocket, received := setupListener(t)
	defer inSocket.Close()

	client, err := NewClient(inSocket.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, inSocket.LocalAddr().String(), client.RemoteAddr().String())

	require.NoError(t, client.Send(Metric{Name: "load", Value: "5", Type: TypeUint16, Slope: SlopeBoth, Tmax: 60}))

	meta := receive(t, received)
	data := receive(t, received)

	assert.Equal(t, []byte{0, 0, 0, 128}, meta[:4])
	assert.Equal(t, []byte{0, 0, 0, 133}, data[:4])

	md, err := Decode(meta)
	require.NoError(t, err)
	assert.Equal(t, "load", md.Name)
	assert.Equal(t, TypeUint16, md.Type)
	assert.Equal(t, "test", md.Host)

	v, err := DecodeValue(data)
	require.NoError(t, err)
	assert.Equal(t, "5", v.Value)

	select {
	case buf := <-received:
		t.Errorf("unexpected extra packet: %v", buf)
	case <-time.After(100 * time.Millisecond):
	}

	assert.EqualValues(t, 2, client.GetSentPackets())
	assert.EqualValues(t, 0, client.GetSendErrors())
}

func TestSendHostname(t *testing.T) {
	inSocket, received := setupListener(t)
	defer inSocket.Close()

	client, err := NewClient(inSocket.LocalAddr().String(), Hostname("web1"))
	require.NoError(t, err)
	defer client.Close()

	t.Run("Default", func(t *testing.T) {
		require.NoError(t, client.Send(Metric{Name: "load", Value: "5", Type: TypeUint16}))

		md, err := Decode(receive(t, received))
		require.NoError(t, err)
		assert.Equal(t, "web1", md.Host)
		assert.False(t, md.Spoof)

		v, err := DecodeValue(receive(t, received))
		require.NoError(t, err)
		assert.Equal(t, "web1", v.Host)
	})

	t.Run("Spoofed", func(t *testing.T) {
		require.NoError(t, client.Send(Metric{Name: "load", Value: "5", Type: TypeUint16, Spoof: "10.0.0.2:db1"}))

		md, err := Decode(receive(t, received))
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.2:db1", md.Host)
		assert.True(t, md.Spoof)

		v, err := DecodeValue(receive(t, received))
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.2:db1", v.Host)
		assert.True(t, v.Spoof)
	})
}

func TestSendValue(t *testing.T) {
	inSocket, received := setupListener(t)
	defer inSocket.Close()

	client, err := NewClient(inSocket.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	template := Metric{Units: "req", Slope: SlopeBoth, Tmax: DefaultTmax, Group: "app"}

	compareType := func(value string, expected Type) func(*testing.T) {
		return func(t *testing.T) {
			require.NoError(t, client.SendValue("requests", value, template))

			md, err := Decode(receive(t, received))
			require.NoError(t, err)
			assert.Equal(t, expected, md.Type)
			assert.Equal(t, "app", md.Group)
			assert.Equal(t, "req", md.Units)

			v, err := DecodeValue(receive(t, received))
			require.NoError(t, err)
			assert.Equal(t, value, v.Value)
		}
	}

	t.Run("Uint16", compareType("5", TypeUint16))
	t.Run("Int32", compareType("-40000", TypeInt32))
	t.Run("String", compareType("ok", TypeString))

	t.Run("Explicit", func(t *testing.T) {
		explicit := template
		explicit.Type = TypeDouble
		require.NoError(t, client.SendValue("requests", "5", explicit))

		md, err := Decode(receive(t, received))
		require.NoError(t, err)
		assert.Equal(t, TypeDouble, md.Type)
		receive(t, received)
	})

	t.Run("Unclassifiable", func(t *testing.T) {
		before := client.GetSentPackets()
		assert.ErrorIs(t, client.SendValue("requests", "4294967296", template), ErrUnclassifiable)
		assert.ErrorIs(t, client.SendValue("requests", "", template), ErrUnclassifiable)
		assert.Equal(t, before, client.GetSentPackets())
	})
}

func TestSendInvalid(t *testing.T) {
	inSocket, _ := setupListener(t)
	defer inSocket.Close()

	client, err := NewClient(inSocket.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	assert.ErrorIs(t, client.Send(Metric{Value: "5", Type: TypeUint16}), ErrInvalidArgument)
	assert.ErrorIs(t, client.Send(Metric{Name: "load", Value: "5"}), ErrInvalidArgument)
	assert.ErrorIs(t, client.Send(Metric{Name: "load", Value: "5", Type: TypeUint16, Slope: Slope(-1)}), ErrInvalidArgument)
	assert.EqualValues(t, 0, client.GetSentPackets())
}

func TestSendClosed(t *testing.T) {
	client, err := NewClient("127.0.0.1:8649", Logger(nullLogger{}))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	err = client.Send(Metric{Name: "load", Value: "5", Type: TypeUint16})
	assert.ErrorIs(t, err, ErrConnection)
	assert.EqualValues(t, 1, client.GetSendErrors())
}

func TestMulticastTTL(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		client, err := NewClient("127.0.0.1:8649", Protocol(ProtocolMulticast))
		require.NoError(t, err)
		defer client.Close()

		ttl, err := ipv4.NewPacketConn(client.conn).MulticastTTL()
		require.NoError(t, err)
		assert.Equal(t, DefaultMulticastTTL, ttl)
	})

	t.Run("Custom", func(t *testing.T) {
		client, err := NewClient("127.0.0.1:8649", Protocol(ProtocolMulticast), MulticastTTL(5))
		require.NoError(t, err)
		defer client.Close()

		ttl, err := ipv4.NewPacketConn(client.conn).MulticastTTL()
		require.NoError(t, err)
		assert.Equal(t, 5, ttl)
	})

	t.Run("Unicast", func(t *testing.T) {
		client, err := NewClient("127.0.0.1:8649")
		require.NoError(t, err)
		defer client.Close()

		ttl, err := ipv4.NewPacketConn(client.conn).MulticastTTL()
		require.NoError(t, err)
		assert.Equal(t, 1, ttl)
	})
}

func TestIPv6(t *testing.T) {
	inSocket, err := net.ListenUDP("udp6", &net.UDPAddr{IP: net.IPv6loopback})
	if err != nil {
		t.Skipf("IPv6 loopback is not available: %s", err)
	}
	defer inSocket.Close()

	client, err := NewClient(inSocket.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send(Metric{Name: "load", Value: "5", Type: TypeUint16}))

	buf := make([]byte, 1500)
	require.NoError(t, inSocket.SetReadDeadline(time.Now().Add(time.Second)))
	n, err := inSocket.Read(buf)
	require.NoError(t, err)

	md, err := Decode(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, "load", md.Name)
}

func TestConcurrent(t *testing.T) {
	inSocket, received := setupListener(t)
	defer inSocket.Close()

	// kernel may cap the size at rmem_max, so the burst stays small as well
	_ = inSocket.SetReadBuffer(4 << 20)

	client, err := NewClient(inSocket.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	workers := 4
	count := 8

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			for j := 0; j < count; j++ {
				err := client.Send(Metric{Name: fmt.Sprintf("worker%d.metric%d", i, j), Value: "1", Type: TypeUint16})
				assert.NoError(t, err)
			}
		}(i)
	}

	seen := make(map[string]bool)

	for k := 0; k < workers*count; k++ {
		md, err := Decode(receive(t, received))
		require.NoError(t, err)

		v, err := DecodeValue(receive(t, received))
		require.NoError(t, err)

		// metadata and value of one metric are never interleaved with other senders
		assert.Equal(t, md.Name, v.Name)
		seen[md.Name] = true
	}

	wg.Wait()

	assert.Len(t, seen, workers*count)
	assert.EqualValues(t, 2*workers*count, client.GetSentPackets())
}
