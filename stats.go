package go_ping

import "math"

// jitterGain is the smoothing factor of the RFC 3550 interarrival jitter.
const jitterGain = 16.0

// Statistics aggregates the records of a run. Records are in send order and
// the run count is len(records). It does not modify records.
func Statistics(records []ProbeRecord) Result {
	res := Result{
		Sent:    len(records),
		Records: append([]ProbeRecord(nil), records...),
	}

	var latencies []int64
	var jitters []float64
	prev := -1
	for i, r := range records {
		lat, ok := r.Latency()
		if !ok {
			res.Lost++
			continue
		}
		latencies = append(latencies, lat)
		if prev < 0 {
			jitters = append(jitters, 0)
		} else {
			h := records[prev]
			drtt := (r.ReceivedAt - h.ReceivedAt) - (r.SentAt - h.SentAt)
			last := jitters[len(jitters)-1]
			jitters = append(jitters, last+(math.Abs(float64(drtt))-last)/jitterGain)
		}
		prev = i
	}
	res.Received = len(latencies)
	if len(records) > 0 {
		res.LostPerc = float64(res.Lost) / float64(len(records)) * 100
	}
	if len(latencies) == 0 {
		return res
	}

	lo, hi, sum := latencies[0], latencies[0], int64(0)
	for _, l := range latencies {
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
		sum += l
	}
	avg := float64(sum) / float64(len(latencies))
	res.Min = Measure{Value: float64(lo), Valid: true}
	res.Max = Measure{Value: float64(hi), Valid: true}
	res.Avg = Measure{Value: avg, Valid: true}
	res.Jitter = Measure{Value: jitters[len(jitters)-1], Valid: true}

	maxJitter := jitters[0]
	for _, j := range jitters {
		maxJitter = math.Max(maxJitter, j)
	}
	res.MOS = mos(avg, maxJitter, res.Lost)
	return res
}

// mos estimates the E-model R factor from effective latency and turns it into
// a mean opinion score. The loss penalty only applies to the high latency
// branch.
func mos(avgLatency, maxJitter float64, lost int) float64 {
	effective := avgLatency + maxJitter*2 + 10
	var r float64
	if effective < 160 {
		r = 93.2 - effective/40
	} else {
		r = 93.2 - (effective-120)/10
		r -= float64(lost) * 2.5
	}
	return 1 + 0.035*r + 0.000007*r*(r-60)*(100-r)
}
