package go_ping

import "golang.org/x/net/ipv4"

// accept reports whether msg answers one of our probes. Our own echo requests
// reflected back carry our identifier too and are never a reply.
func accept(msg *ICMPRcv, id uint16) bool {
	return msg.Id == id && msg.Type != ipv4.ICMPTypeEcho
}
