package go_ping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Pinger probes one destination Count times, one probe at a time.
type Pinger struct {
	conf     Config
	resolver Resolver
	dial     func(conf Config, now func() time.Time) (Transport, error)
	now      func() time.Time
}

func NewPinger(conf Config) (*Pinger, error) {
	err := conf.validate()
	if err != nil {
		return nil, err
	}
	p := &Pinger{
		conf:     conf,
		resolver: newNetResolver(),
		dial:     newTransportIpv4,
		now:      time.Now,
	}
	return p, nil
}

// Ping runs count probes against dest with the default configuration.
func Ping(ctx context.Context, dest string, count int, timeout time.Duration) (*Result, error) {
	conf := DefaultConfig()
	conf.Count = count
	conf.Timeout = timeout
	p, err := NewPinger(conf)
	if err != nil {
		return nil, err
	}
	return p.Ping(ctx, dest)
}

func (c Config) validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be greater than zero (%v)", ErrPrecondition, c.Count)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be greater than zero (%v)", ErrPrecondition, c.Timeout)
	}
	return nil
}

// Ping resolves dest, opens one socket for the whole run and sends the
// probes. Lost probes do not stop the run, any other failure aborts it
// without a result.
func (p *Pinger) Ping(ctx context.Context, dest string) (*Result, error) {
	err := p.conf.validate()
	if err != nil {
		return nil, err
	}
	ip, err := p.resolver.LookupIPv4(ctx, dest)
	if err != nil {
		return nil, err
	}
	dst, err := sockAddr(ip)
	if err != nil {
		return nil, err
	}
	tr, err := p.dial(p.conf, p.now)
	if err != nil {
		return nil, err
	}
	defer tr.Close()

	records := make([]ProbeRecord, 0, p.conf.Count)
	seq := uint16(1)
	for i := 0; i < p.conf.Count; i++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := p.probe(ctx, tr, dst, seq)
		if err != nil {
			return nil, probeError(i, err)
		}
		if rec.Lost {
			p.logf("%v seq=%v timeout", ip, rec.Seq)
		} else {
			p.logf("%v seq=%v time=%vms", ip, rec.Seq, rec.ReceivedAt-rec.SentAt)
		}
		records = append(records, rec)
		if p.conf.IncrementSeq {
			seq++
		}
	}
	res := Statistics(records)
	return &res, nil
}

func (p *Pinger) probe(ctx context.Context, tr Transport, dst unix.Sockaddr, seq uint16) (ProbeRecord, error) {
	rec := ProbeRecord{
		Seq:    seq,
		SentAt: p.now().Round(time.Millisecond).UnixMilli(),
	}
	err := tr.Send(dst, p.conf.ID, seq)
	if err != nil {
		return rec, err
	}
	rtt, ok, err := tr.Receive(ctx, p.conf.ID, p.conf.Timeout)
	if err != nil {
		return rec, err
	}
	if !ok {
		rec.Lost = true
		return rec, nil
	}
	rec.ReceivedAt = rec.SentAt + rtt.Round(time.Millisecond).Milliseconds()
	return rec, nil
}

// probeError classifies a failure inside the loop as a socket error unless it
// is a cancellation or already classified.
func probeError(idx int, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrSocket) || errors.Is(err, ErrPermission) {
		return fmt.Errorf("probe %v: %w", idx+1, err)
	}
	return fmt.Errorf("%w: probe %v: %w", ErrSocket, idx+1, err)
}

func (p *Pinger) logf(format string, v ...interface{}) {
	if p.conf.Logger != nil {
		p.conf.Logger.Printf(format, v...)
	}
}
