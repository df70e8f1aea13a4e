package tint

import (
	"container/heap"
	"slices"
	"sort"
	"strings"

	"github.com/isseis/go-pipetint/internal/color"
)

// String renders the text with escape sequences. The output depends only on
// the text and its ranges.
//
// The text is split at every range boundary. For each piece the highest
// priority covering range is chosen per channel. Whenever that choice changes,
// a reset is written if anything was active, followed by the start sequence
// of every active channel in foreground, background, attribute order. A final
// reset closes the output if anything is still active.
func (t Text) String() string {
	live := make([]int, 0, len(t.ranges))
	for i, r := range t.ranges {
		if !r.Empty() {
			live = append(live, i)
		}
	}
	if len(live) == 0 {
		return t.plain
	}

	points := make([]int, 0, 2*len(live)+2)
	points = append(points, 0, len(t.runes))
	for _, i := range live {
		points = append(points, t.ranges[i].Start, t.ranges[i].End)
	}
	slices.Sort(points)
	points = slices.Compact(points)

	sort.SliceStable(live, func(a, b int) bool {
		return t.ranges[live[a]].Start < t.ranges[live[b]].Start
	})

	var (
		b       strings.Builder
		heaps   [color.NumChannels]rangeHeap
		current [color.NumChannels]channelState
		next    int
	)
	for i := range heaps {
		heaps[i].ranges = t.ranges
	}

	for p := 0; p+1 < len(points); p++ {
		lo, hi := points[p], points[p+1]

		for next < len(live) && t.ranges[live[next]].Start <= lo {
			idx := live[next]
			heap.Push(&heaps[t.ranges[idx].Color.channel], idx)
			next++
		}

		var state [color.NumChannels]channelState
		for ch := range heaps {
			h := &heaps[ch]
			for h.Len() > 0 && t.ranges[h.items[0]].End <= lo {
				heap.Pop(h)
			}
			if h.Len() > 0 {
				state[ch] = channelState{color: t.ranges[h.items[0]].Color, active: true}
			}
		}

		if state != current {
			if anyActive(current) {
				b.WriteString(color.EndSequence())
			}
			for _, s := range state {
				if s.active {
					b.WriteString(s.color.Sequence())
				}
			}
			current = state
		}
		b.WriteString(t.plain[t.offsets[lo]:t.offsets[hi]])
	}

	if anyActive(current) {
		b.WriteString(color.EndSequence())
	}
	return b.String()
}

type channelState struct {
	color  Color
	active bool
}

func anyActive(states [color.NumChannels]channelState) bool {
	for _, s := range states {
		if s.active {
			return true
		}
	}
	return false
}

// rangeHeap is a max-heap of range indices ordered by priority. Ties go to
// the range added first. Expired ranges are dropped lazily when they reach
// the top.
type rangeHeap struct {
	ranges []Range
	items  []int
}

func (h *rangeHeap) Len() int { return len(h.items) }

func (h *rangeHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if c := h.ranges[a].Priority.Compare(h.ranges[b].Priority); c != 0 {
		return c > 0
	}
	return a < b
}

func (h *rangeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *rangeHeap) Push(x any) { h.items = append(h.items, x.(int)) }

func (h *rangeHeap) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}
