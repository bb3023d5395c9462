package go_ping

import (
	"log"
	"os"
	"time"
)

const (
	// payloadSize is the ICMP payload length, the 8 byte send timestamp included.
	payloadSize = 192
	// payloadFiller pads the payload after the timestamp.
	payloadFiller = 'Q'
)

type Config struct {
	Count        int
	Timeout      time.Duration
	ID           uint16
	IncrementSeq bool
	Logger       *log.Logger
}

// DefaultConfig returns 10 probes, a 2 second timeout and an identifier
// taken from the process id.
func DefaultConfig() Config {
	return Config{
		Count:   10,
		Timeout: 2 * time.Second,
		ID:      uint16(os.Getpid() & 0xffff),
	}
}

// ProbeRecord is one probe of a run. Timestamps are unix milliseconds.
// A record is either lost or carries both timestamps.
type ProbeRecord struct {
	Seq        uint16
	SentAt     int64
	ReceivedAt int64
	Lost       bool
}

// Latency returns the round trip in milliseconds, false when the probe was lost.
func (r ProbeRecord) Latency() (int64, bool) {
	if r.Lost {
		return 0, false
	}
	return r.ReceivedAt - r.SentAt, true
}

// Measure is a millisecond value that is absent when no probe succeeded.
type Measure struct {
	Value float64
	Valid bool
}

type Result struct {
	Sent     int
	Received int
	Lost     int
	LostPerc float64
	Min      Measure
	Max      Measure
	Avg      Measure
	Jitter   Measure
	MOS      float64
	Records  []ProbeRecord
}
