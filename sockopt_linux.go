package go_ping

import "golang.org/x/sys/unix"

const (
	solRaw     = 255 // SOL_RAW
	icmpFilter = 1   // ICMP_FILTER
)

// set bits block an ICMP type, only echo reply (type 0) passes
var echoReplyOnly = ^uint32(1)

func setSockOpts(fd int) error {
	err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, 64*1024)
	if err != nil {
		return err
	}
	return unix.SetsockoptInt(fd, solRaw, icmpFilter, int(int32(echoReplyOnly)))
}
