package go_ping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// Receive waits for a reply until a deadline fixed at entry. Discarded
// datagrams never extend the wait: every iteration polls with whatever is
// left until the deadline.
func (t *transportIpv4) Receive(ctx context.Context, id uint16, timeout time.Duration) (time.Duration, bool, error) {
	deadline := t.now().Add(timeout)
	buf := make([]byte, rcvBufSize)
	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		remaining := deadline.Sub(t.now())
		if remaining <= 0 {
			return 0, false, nil
		}
		ready, err := t.sock.Poll(remaining)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("%w: poll: %w", ErrSocket, err)
		}
		if !ready {
			return 0, false, nil
		}

		rcvAt := t.now()
		n, err := t.sock.Recvfrom(buf)
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("%w: recvfrom: %w", ErrSocket, err)
		}
		msg, err := t.deConstructor.DeConstruct(buf[:n])
		if err != nil {
			t.discard(buf[:n], err.Error())
			continue
		}
		if !accept(msg, id) {
			t.discard(buf[:n], fmt.Sprintf("type %v id %v seq %v", msg.Type, msg.Id, msg.Seq))
			continue
		}
		return rcvAt.Sub(msg.SentAt), true, nil
	}
}

func (t *transportIpv4) discard(pkg []byte, reason string) {
	if t.logger == nil {
		return
	}
	t.logf("discard from %v: %v", sender(pkg), reason)
}

func sender(pkg []byte) string {
	hd, err := ipv4.ParseHeader(pkg)
	if err != nil || hd.Src == nil {
		return "unknown"
	}
	return hd.Src.String()
}
