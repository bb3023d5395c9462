package go_ping

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sys/unix"
)

// Transport sends echo requests and waits for the matching replies.
type Transport interface {
	Send(dst unix.Sockaddr, id, seq uint16) error
	// Receive returns the round trip of the first reply carrying id, or false
	// when none arrived within timeout.
	Receive(ctx context.Context, id uint16, timeout time.Duration) (time.Duration, bool, error)
	Close() error
}

type transportIpv4 struct {
	sock          socket
	constructor   Constructor
	deConstructor DeConstructor
	now           func() time.Time
	logger        *log.Logger
}

func newTransportIpv4(conf Config, now func() time.Time) (Transport, error) {
	sock, err := newRawSocket()
	if err != nil {
		return nil, err
	}
	return newTransportWithSocket(sock, conf.Logger, now), nil
}

func newTransportWithSocket(sock socket, logger *log.Logger, now func() time.Time) *transportIpv4 {
	return &transportIpv4{
		sock:          sock,
		constructor:   newConstructIpv4(now),
		deConstructor: newDeconstructIpv4(),
		now:           now,
		logger:        logger,
	}
}

func (t *transportIpv4) Send(dst unix.Sockaddr, id, seq uint16) error {
	bts, err := t.constructor.Packet(ConstructPacket{Id: id, Seq: seq})
	if err != nil {
		return fmt.Errorf("%w: build echo request: %w", ErrSocket, err)
	}
	err = t.sock.Sendto(bts, dst)
	if err != nil {
		return fmt.Errorf("%w: sendto: %w", ErrSocket, err)
	}
	return nil
}

func (t *transportIpv4) Close() error {
	return t.sock.Close()
}

func (t *transportIpv4) logf(format string, v ...interface{}) {
	if t.logger != nil {
		t.logger.Printf(format, v...)
	}
}
