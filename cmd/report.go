package main

import (
	"fmt"
	"io"
	"strconv"

	go_ping "github.com/hbasria/go-ping"
)

const placeholder = "NaN"

func report(w io.Writer, dest string, res *go_ping.Result, perProbe bool) {
	if perProbe {
		for _, r := range res.Records {
			if lat, ok := r.Latency(); ok {
				fmt.Fprintf(w, "reply from %s: seq=%d time=%dms\n", dest, r.Seq, lat)
			} else {
				fmt.Fprintf(w, "request timeout for %s: seq=%d\n", dest, r.Seq)
			}
		}
	}
	fmt.Fprintf(w, "Statistics for %s:\n", dest)
	fmt.Fprintf(w, " - packet loss: %d (%.2f%%)\n", res.Lost, res.LostPerc)
	fmt.Fprintf(w, " - latency (MIN/MAX/AVG): %s/%s/%s\n", latency(res.Min), latency(res.Max), latency(res.Avg))
	if res.Jitter.Valid {
		fmt.Fprintf(w, " - jitter: %.4f\n", res.Jitter.Value)
	} else {
		fmt.Fprintf(w, " - jitter: %s\n", placeholder)
	}
	fmt.Fprintf(w, " - MOS: %.1f\n", res.MOS)
}

func latency(m go_ping.Measure) string {
	if !m.Valid {
		return placeholder
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}
