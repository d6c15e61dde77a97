package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type CliConfig struct {
	Server          string `default:"https://www.pse.pl"`
	SSID            string
	Password        string
	CredentialsFile string `default:"/etc/rce-reader/credentials.env"`

	TimezoneOffset       int    `default:"1"`
	DaylightSavingOffset int    `default:"1"`
	HourLabelOffset      int    `default:"1"`
	NTPServer            string `default:"pool.ntp.org"`

	ConnectTimeoutSeconds int `default:"20"`
	FetchAttempts         int `default:"3"`
	FetchBackoffSeconds   int `default:"5"`

	IndicatorType   string `default:"dummy"`
	ModbusAddress   string
	ModbusSlaveID   int `default:"1"`
	ModbusRegister  int `default:"0"`
	ModbusFullScale int `default:"255"`

	MQTTAddress string
	MQTTPrefix  string `default:"rce"`

	MetricsAddress string

	LogLevel string `default:"info"`

	mutex sync.RWMutex
}

func (c *CliConfig) Credentials() (ssid, password string) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.SSID, c.Password
}

func (c *CliConfig) SetCredentials(ssid, password string) {
	c.mutex.Lock()
	c.SSID = strings.TrimSpace(ssid)
	c.Password = password
	c.mutex.Unlock()
}

// LoadCredentials reads SSID and PASSWORD from CredentialsFile. Values already set from
// flags or environment take precedence. A missing file is not an error.
func (c *CliConfig) LoadCredentials() error {
	if c.CredentialsFile == "" {
		return nil
	}
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	env, err := godotenv.Read(c.CredentialsFile)
	if err != nil {
		return fmt.Errorf("error reading credentials file: %w", err)
	}

	ssid, password := c.Credentials()
	if ssid == "" {
		ssid = env["SSID"]
	}
	if password == "" {
		password = env["PASSWORD"]
	}
	c.SetCredentials(ssid, password)
	return nil
}

func (c *CliConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

func (c *CliConfig) FetchBackoff() time.Duration {
	return time.Duration(c.FetchBackoffSeconds) * time.Second
}

func (c *CliConfig) Validate() error {
	if c.HourLabelOffset < 0 || c.HourLabelOffset > 2 {
		return fmt.Errorf("HourLabelOffset must be between 0 and 2, got %d", c.HourLabelOffset)
	}
	if c.ConnectTimeoutSeconds <= 0 {
		return fmt.Errorf("ConnectTimeoutSeconds must be positive")
	}
	if c.FetchAttempts < 1 {
		return fmt.Errorf("FetchAttempts must be at least 1")
	}
	if c.ModbusRegister < 0 || c.ModbusRegister > 0xfffd {
		return fmt.Errorf("ModbusRegister out of range: %d", c.ModbusRegister)
	}
	if c.ModbusSlaveID < 0 || c.ModbusSlaveID > 0xff {
		return fmt.Errorf("ModbusSlaveID out of range: %d", c.ModbusSlaveID)
	}
	if c.ModbusFullScale < 1 || c.ModbusFullScale > 0xffff {
		return fmt.Errorf("ModbusFullScale out of range: %d", c.ModbusFullScale)
	}
	return nil
}
