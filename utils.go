package go_ping

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// checksum is the one's complement sum used by IP and ICMP. Words are summed
// with the first byte as the low half, and the folded complement is byte
// swapped at the end. Writing the swapped value big-endian into the header
// yields the usual RFC 1071 checksum on the wire, so the swap must stay.
func checksum(buf []byte) uint16 {
	sum := uint32(0)
	for ; len(buf) >= 2; buf = buf[2:] {
		sum += uint32(buf[1])<<8 | uint32(buf[0])
	}
	if len(buf) > 0 {
		sum += uint32(buf[0])
	}
	sum = (sum >> 16) + (sum & 0xffff)
	sum += sum >> 16
	cSum := ^uint16(sum)
	// historical byte swap, see above
	return cSum>>8 | cSum<<8
}

// Resolver maps a destination name to an IPv4 address.
type Resolver interface {
	LookupIPv4(ctx context.Context, host string) (net.IP, error)
}

type netResolver struct {
	r *net.Resolver
}

func newNetResolver() Resolver {
	return &netResolver{r: net.DefaultResolver}
}

func (n *netResolver) LookupIPv4(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
		return nil, fmt.Errorf("%w: %v is not an IPv4 address", ErrResolve, host)
	}
	ips, err := n.r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("%w: no IPv4 address for %v", ErrResolve, host)
}

func sockAddr(ip net.IP) (unix.Sockaddr, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%w: %v is not an IPv4 address", ErrResolve, ip)
	}
	var addr [4]byte
	copy(addr[:], ip4)
	return &unix.SockaddrInet4{Addr: addr}, nil
}
