package ui

// rateHistory keeps the most recent session transfer rates, oldest first.
type rateHistory struct {
	limit int
	down  []int64
	up    []int64
}

func newRateHistory(limit int) rateHistory {
	return rateHistory{limit: limit}
}

func (r *rateHistory) push(down, up int64) {
	r.down = appendBounded(r.down, down, r.limit)
	r.up = appendBounded(r.up, up, r.limit)
}

func appendBounded(values []int64, v int64, limit int) []int64 {
	values = append(values, v)
	if limit > 0 && len(values) > limit {
		values = values[len(values)-limit:]
	}
	return values
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the last width values scaled to the largest of them.
// An all-zero window renders as the lowest block.
func sparkline(values []int64, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var peak int64
	for _, v := range values {
		peak = max(peak, v)
	}
	out := make([]rune, len(values))
	top := int64(len(sparkBlocks) - 1)
	for i, v := range values {
		level := int64(0)
		if peak > 0 && v > 0 {
			level = (v*top + peak - 1) / peak
		}
		out[i] = sparkBlocks[min(max(level, 0), top)]
	}
	return string(out)
}
