package restservice

import (
	"fmt"
	"net"
	"time"
)

const defaultTokenExpiry = 24 * time.Hour

type Config struct {
	Port      uint32
	JWTSecret string
}

func (c Config) Validate() error {
	if len(c.JWTSecret) <= 0 {
		return fmt.Errorf("missing jwt secret")
	}

	lis, err := net.Listen("tcp", c.address())
	if err != nil {
		return fmt.Errorf("invalid port: %s", err)
	}
	// nolint:all
	defer lis.Close()

	return nil
}

func (c Config) address() string {
	return fmt.Sprintf(":%d", c.Port)
}
