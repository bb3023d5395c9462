package go_ping

import "golang.org/x/sys/unix"

func setSockOpts(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, 64*1024)
}
