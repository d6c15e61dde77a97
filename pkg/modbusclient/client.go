package modbusclient

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/goburrow/modbus"
	"github.com/sirupsen/logrus"
)

type Client interface {
	ReadHoldingRegisters(address, count uint16) ([]uint16, error)
	WriteMultipleRegisters(address uint16, values []uint16) error
}

type client struct {
	client modbus.Client
	close  func() error
}

func New(c modbus.Client, close func() error) *client {
	return &client{
		client: c,
		close:  close,
	}
}

// DialTCP returns a client for a Modbus TCP device. The connection is opened on first use
// and reopened after broken pipes and timeouts.
func DialTCP(address string, slaveID byte) *client {
	handler := modbus.NewTCPClientHandler(address)
	handler.SlaveId = slaveID
	handler.Timeout = 5 * time.Second
	handler.IdleTimeout = time.Minute
	return New(modbus.NewClient(handler), handler.Close)
}

func (c *client) Close() error {
	return c.close()
}

func (c *client) closeIfNeeded(e error) {
	if e == nil {
		return
	}

	if errors.Is(e, syscall.EPIPE) {
		logrus.Warn("reconnect due to broken pipe")
		err := c.close()
		if err != nil {
			logrus.Errorf("error closing client: %s", err)
		}
	}

	if errors.Is(e, os.ErrDeadlineExceeded) {
		logrus.Warn("reconnect due to i/o timeout")
		err := c.close()
		if err != nil {
			logrus.Errorf("error closing client: %s", err)
		}
	}
}

func (c *client) ReadHoldingRegisters(address, count uint16) ([]uint16, error) {
	b, err := c.client.ReadHoldingRegisters(address, count)
	if err != nil {
		c.closeIfNeeded(err)
		return nil, fmt.Errorf("error reading address %d: %w", address, err)
	}
	return Decode(b), nil
}

func (c *client) WriteMultipleRegisters(address uint16, values []uint16) error {
	_, err := c.client.WriteMultipleRegisters(address, uint16(len(values)), Encode(values))
	if err != nil {
		c.closeIfNeeded(err)
		return fmt.Errorf("error writing %d registers from address %d error: %w", len(values), address, err)
	}
	return nil
}

// Encode High byte first (big endian)
func Encode(values []uint16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint16(b[2*i:], v)
	}
	return b
}

// Decode High byte first (big endian). A trailing odd byte is ignored.
func Decode(data []byte) []uint16 {
	values := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		values = append(values, binary.BigEndian.Uint16(data[i:i+2]))
	}
	return values
}
