package go_ping

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"golang.org/x/net/ipv4"
)

const (
	icmpHeaderLen = 8
	timestampLen  = 8
	// replyOffset is where the ICMP header starts in a datagram read from a
	// raw socket, which delivers the IPv4 header first.
	replyOffset = ipv4.HeaderLen
)

type DeConstructor interface {
	DeConstruct(pkg []byte) (*ICMPRcv, error)
}

// ICMPRcv holds the header fields of a received datagram. The fields are read
// the same way whatever the ICMP type is.
type ICMPRcv struct {
	Type     ipv4.ICMPType
	Code     uint8
	Checksum uint16
	Id       uint16
	Seq      uint16
	SentAt   time.Time
}

type deConstructIpv4 struct{}

func newDeconstructIpv4() DeConstructor {
	return &deConstructIpv4{}
}

func (dc *deConstructIpv4) DeConstruct(pkg []byte) (*ICMPRcv, error) {
	if len(pkg) < replyOffset+icmpHeaderLen+timestampLen {
		return nil, fmt.Errorf("%w: %v bytes", ErrDecode, len(pkg))
	}
	hd := pkg[replyOffset : replyOffset+icmpHeaderLen]
	ts := pkg[replyOffset+icmpHeaderLen : replyOffset+icmpHeaderLen+timestampLen]
	rcv := &ICMPRcv{
		Type:     ipv4.ICMPType(hd[0]),
		Code:     hd[1],
		Checksum: binary.BigEndian.Uint16(hd[2:4]),
		Id:       binary.BigEndian.Uint16(hd[4:6]),
		Seq:      binary.BigEndian.Uint16(hd[6:8]),
		SentAt:   fromUnixSeconds(math.Float64frombits(binary.BigEndian.Uint64(ts))),
	}
	return rcv, nil
}
