package go_ping

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

const rcvBufSize = 1500

type socket interface {
	Sendto(msg []byte, to unix.Sockaddr) error
	// Poll waits up to timeout for a readable datagram.
	Poll(timeout time.Duration) (bool, error)
	Recvfrom(buf []byte) (int, error)
	Close() error
}

type rawSocket struct {
	fd int
}

func newRawSocket() (socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("%w: %w - Note that ICMP messages can only be sent from processes running as root", ErrPermission, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSocket, err)
	}
	err = setSockOpts(fd)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: set socket options: %w", ErrSocket, err)
	}
	return &rawSocket{fd: fd}, nil
}

func (s *rawSocket) Sendto(msg []byte, to unix.Sockaddr) error {
	return unix.Sendto(s.fd, msg, 0, to)
}

func (s *rawSocket) Poll(timeout time.Duration) (bool, error) {
	// round up, a zero timeout would make poll return immediately
	ms := int((timeout + time.Millisecond - 1) / time.Millisecond)
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

func (s *rawSocket) Recvfrom(buf []byte) (int, error) {
	n, _, err := unix.Recvfrom(s.fd, buf, 0)
	return n, err
}

func (s *rawSocket) Close() error {
	return unix.Close(s.fd)
}
