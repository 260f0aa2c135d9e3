package model

import (
	"context"
	"net"
)

// SecurityLayer produces a listener, plain or TLS depending on
// configuration.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a transport server with a graceful shutdown hook.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
