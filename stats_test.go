package go_ping

import (
	"math"
	"reflect"
	"testing"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9
}

// series builds records sent one second apart; a negative latency is a loss.
func series(latencies ...int64) []ProbeRecord {
	records := make([]ProbeRecord, len(latencies))
	for i, l := range latencies {
		sent := int64(1700000000000 + i*1000)
		if l < 0 {
			records[i] = ProbeRecord{Seq: 1, SentAt: sent, Lost: true}
			continue
		}
		records[i] = ProbeRecord{Seq: 1, SentAt: sent, ReceivedAt: sent + l}
	}
	return records
}

func TestStatisticsNoReplies(t *testing.T) {
	res := Statistics(series(-1, -1, -1, -1, -1))
	if res.Lost != 5 || res.LostPerc != 100 {
		t.Errorf("lost=%v perc=%v", res.Lost, res.LostPerc)
	}
	if res.Min.Valid || res.Max.Valid || res.Avg.Valid || res.Jitter.Valid || res.MOS != 0 {
		t.Errorf("%+v", res)
	}
	if empty := Statistics(nil); empty.LostPerc != 0 || empty.Jitter.Valid {
		t.Errorf("empty run: %+v", empty)
	}
}

func TestStatisticsSingleReply(t *testing.T) {
	res := Statistics(series(-1, 42, -1))
	if res.Lost != 2 || !approx(res.LostPerc, 200.0/3) {
		t.Errorf("lost=%v perc=%v", res.Lost, res.LostPerc)
	}
	if res.Min.Value != 42 || res.Max.Value != 42 || res.Avg.Value != 42 {
		t.Errorf("min/max/avg = %v/%v/%v", res.Min.Value, res.Max.Value, res.Avg.Value)
	}
	if !res.Jitter.Valid || res.Jitter.Value != 0 {
		t.Errorf("jitter = %+v, want 0", res.Jitter)
	}
}

func TestStatisticsLatency(t *testing.T) {
	res := Statistics(series(10, 20, 15))
	if res.Lost != 0 || res.LostPerc != 0 || res.Received != 3 {
		t.Errorf("lost=%v perc=%v", res.Lost, res.LostPerc)
	}
	if res.Min.Value != 10 || res.Max.Value != 20 || res.Avg.Value != 15 {
		t.Errorf("min/max/avg = %v/%v/%v", res.Min.Value, res.Max.Value, res.Avg.Value)
	}
	if res.Jitter.Value != 0.8984375 {
		t.Errorf("jitter = %v", res.Jitter.Value)
	}
	if !approx(res.MOS, 4.395944546226374) {
		t.Errorf("mos = %v", res.MOS)
	}
	if avg := Statistics(series(10, 11)).Avg; avg.Value != 10.5 {
		t.Errorf("avg = %v, want 10.5", avg.Value)
	}
}

func TestStatisticsJitterRecurrence(t *testing.T) {
	latencies := []int64{30, 31, 50, 12, 12, 90, 40, 41, 39, 100}
	records := series(latencies...)

	var prev float64
	for k := 1; k <= len(records); k++ {
		got := Statistics(records[:k]).Jitter.Value
		want := 0.0
		if k > 1 {
			drtt := math.Abs(float64(latencies[k-1] - latencies[k-2]))
			want = prev + (drtt-prev)/16
			step := math.Abs(got - prev)
			if step > math.Abs(drtt-prev)/16+1e-12 {
				t.Errorf("probe %v: jitter moved %v, bound %v", k, step, math.Abs(drtt-prev)/16)
			}
		}
		if !approx(got, want) {
			t.Errorf("probe %v: jitter %v, want %v", k, got, want)
		}
		prev = got
	}
}

func TestStatisticsJitterSkipsLost(t *testing.T) {
	// the previous delivered probe is two positions back
	records := series(10, -1, 26)
	res := Statistics(records)
	if res.Jitter.Value != 1 {
		t.Errorf("jitter = %v, want (|16| - 0) / 16", res.Jitter.Value)
	}
	// only the change in transit time counts, not the send spacing
	records[2].SentAt += 500
	records[2].ReceivedAt += 500
	if res = Statistics(records); res.Jitter.Value != 1 {
		t.Errorf("jitter with drift = %v", res.Jitter.Value)
	}
	records[2].ReceivedAt += 160
	if res = Statistics(records); res.Jitter.Value != 11 {
		t.Errorf("jitter = %v, want 176 / 16", res.Jitter.Value)
	}
}

func TestStatisticsIdempotent(t *testing.T) {
	records := series(12, -1, 35, 18, -1, 240, 19)
	orig := append([]ProbeRecord(nil), records...)
	a := Statistics(records)
	b := Statistics(records)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
	if math.Float64bits(a.MOS) != math.Float64bits(b.MOS) || math.Float64bits(a.Jitter.Value) != math.Float64bits(b.Jitter.Value) {
		t.Error("results not bit identical")
	}
	if !reflect.DeepEqual(records, orig) {
		t.Error("records modified")
	}
	a.Records[0].Lost = true
	if records[0].Lost {
		t.Error("result shares the caller's records")
	}
}

// The loss penalty applies only when effective latency reaches 160ms. Whether
// the original meant it for both branches is unknown; this pins the behaviour.
func TestMOSLossPenaltyOnlyAboveThreshold(t *testing.T) {
	cases := []struct {
		name      string
		latencies []int64
		want      float64
	}{
		{name: "low latency no loss", latencies: []int64{100}, want: 4.349868437125001},
		{name: "low latency with loss", latencies: []int64{100, -1}, want: 4.349868437125001},
		{name: "high latency no loss", latencies: []int64{200}, want: 4.172362984},
		{name: "high latency with loss", latencies: []int64{200, -1}, want: 4.086607209},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Statistics(series(c.latencies...)).MOS; !approx(got, c.want) {
				t.Errorf("mos = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMOSBranches(t *testing.T) {
	// effective latency 159.5 stays on the low branch, 160 moves to the high one
	low := mos(149.5, 0, 3)
	if want := 93.2 - 159.5/40; !approx(low, 1+0.035*want+0.000007*want*(want-60)*(100-want)) {
		t.Errorf("low branch mos = %v", low)
	}
	high := mos(150, 0, 3)
	if want := 93.2 - 4 - 7.5; !approx(high, 1+0.035*want+0.000007*want*(want-60)*(100-want)) {
		t.Errorf("high branch mos = %v", high)
	}
}
