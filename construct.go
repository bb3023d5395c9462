package go_ping

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"golang.org/x/net/ipv4"
)

type Constructor interface {
	Packet(req ConstructPacket) ([]byte, error)
}

type ConstructPacket struct {
	Id  uint16
	Seq uint16
}

// headerICMPEcho is written big-endian:
//
//	type(1) code(1) checksum(2) identifier(2) sequence(2)
type headerICMPEcho struct {
	typ      uint8
	code     uint8
	checkSum uint16
	id       uint16
	seq      uint16
}

type constructIpv4 struct {
	now func() time.Time
}

func newConstructIpv4(now func() time.Time) Constructor {
	return &constructIpv4{now: now}
}

// Packet builds an echo request. The payload starts with the send time as a
// big-endian float64 of unix seconds, followed by filler up to payloadSize.
func (c *constructIpv4) Packet(req ConstructPacket) ([]byte, error) {
	payload := make([]byte, payloadSize)
	binary.BigEndian.PutUint64(payload[:8], math.Float64bits(unixSeconds(c.now())))
	for i := 8; i < len(payload); i++ {
		payload[i] = payloadFiller
	}

	hd := &headerICMPEcho{
		typ:  uint8(ipv4.ICMPTypeEcho),
		code: 0,
		id:   req.Id,
		seq:  req.Seq,
	}
	bts, err := hd.marshal(payload)
	if err != nil {
		return nil, err
	}
	hd.checkSum = checksum(bts)
	return hd.marshal(payload)
}

func (h *headerICMPEcho) marshal(payload []byte) ([]byte, error) {
	var b bytes.Buffer
	err := binary.Write(&b, binary.BigEndian, h)
	if err != nil {
		return nil, err
	}
	b.Write(payload)
	return b.Bytes(), nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
