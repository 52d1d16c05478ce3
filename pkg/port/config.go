package port

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/servo42.go/pkg/servo42"
)

// Config specifies how to reach a controller.
type Config struct {
	// Device is a serial device path, or a URL for network bridges:
	// tcp://host:port (raw TCP, e.g. ser2net), ws://host:port/path, or
	// sim:// for a simulated controller.
	Device string
	// Baud is the serial speed. Ignored for network bridges.
	Baud int
	// Address is the slave address of the controller.
	Address byte
	// Timeout is the reply window of a single command.
	Timeout time.Duration
}

var defaultConfig = Config{
	Baud:    38400,
	Address: servo42.DefaultAddress,
	Timeout: 100 * time.Millisecond,
}

func init() {
	if val := os.Getenv("SERVO42_PORT"); val != "" {
		defaultConfig.Device = val
	}
	if val := os.Getenv("SERVO42_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
	if val := os.Getenv("SERVO42_ADDRESS"); val != "" {
		if addr, err := ParseAddress(val); err == nil {
			defaultConfig.Address = addr
		}
	}
	if val := os.Getenv("SERVO42_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			defaultConfig.Timeout = d
		}
	}
}

// addressValue implements flag.Value.
type addressValue struct {
	addr *byte
}

func (v addressValue) String() string {
	if v.addr == nil {
		return ""
	}
	return fmt.Sprintf("0x%02x", *v.addr)
}

func (v addressValue) Set(s string) error {
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*v.addr = addr
	return nil
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "port", defaultConfig.Device, "Serial device or tcp:// / ws:// bridge URL.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.Var(addressValue{&defaultConfig.Address}, "addr", "Slave address (0xe0-0xe9).")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Reply timeout.")
}

// ParseAddress parses a slave address like "0xe1" or "225".
func ParseAddress(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", s, err)
	}
	if !servo42.IsValidAddress(byte(v)) {
		return 0, fmt.Errorf("address 0x%02x out of range 0x%02x-0x%02x", v, servo42.MinAddress, servo42.MaxAddress)
	}
	return byte(v), nil
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the config is usable for Open.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("port must be specified (-port or SERVO42_PORT)")
	}
	if !servo42.IsValidAddress(c.Address) {
		return fmt.Errorf("address 0x%02x out of range", c.Address)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
