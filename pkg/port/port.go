package port

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/tarm/serial"
	"golang.org/x/net/websocket"

	"github.com/robotalks/servo42.go/pkg/sim"
)

const dialTimeout = 5 * time.Second

// Open opens the transport described by Device.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	parsedURL, err := url.Parse(c.Device)
	if err != nil || parsedURL.Scheme == "" {
		return openSerial(c.Device, c.Baud)
	}
	switch parsedURL.Scheme {
	case "tcp":
		conn, err := net.DialTimeout("tcp", parsedURL.Host, dialTimeout)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %v", parsedURL.Host, err)
		}
		return conn, nil
	case "ws", "wss":
		return openWebsocket(parsedURL)
	case "file":
		return openSerial(parsedURL.Path, c.Baud)
	case "sim":
		return sim.New(c.Address), nil
	default:
		return nil, fmt.Errorf("unknown port scheme: %q", parsedURL.Scheme)
	}
}

func openSerial(device string, baud int) (io.ReadWriteCloser, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name: device,
		Baud: baud,
		Size: 8,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %v", device, err)
	}
	return p, nil
}

func openWebsocket(u *url.URL) (io.ReadWriteCloser, error) {
	origin := "http://" + u.Host + "/"
	if u.Scheme == "wss" {
		origin = "https://" + u.Host + "/"
	}
	conn, err := websocket.Dial(u.String(), "", origin)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %v", u, err)
	}
	conn.PayloadType = websocket.BinaryFrame
	return conn, nil
}
