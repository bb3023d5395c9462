package go_ping

import "errors"

var (
	ErrPrecondition = errors.New("precondition failed")
	ErrResolve      = errors.New("cannot resolve destination")
	ErrPermission   = errors.New("socket permission denied")
	ErrSocket       = errors.New("socket error")
	ErrDecode       = errors.New("malformed ICMP packet")
)
