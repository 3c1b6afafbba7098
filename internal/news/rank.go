package news

import (
	"sort"
	"time"
)

// DefaultWindow is the recency window for one briefing refresh.
const DefaultWindow = 24 * time.Hour

// FilterAndRank drops items published before now minus the window (the
// boundary itself is retained) and orders the remainder by relevance score
// descending. The sort is stable so equally scored items keep their arrival
// order, making the result deterministic for a fixed now.
func FilterAndRank(items []Item, now time.Time, window time.Duration) []Item {
	if window <= 0 {
		window = DefaultWindow
	}
	cutoff := now.Add(-window)

	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.PublishedAt.Before(cutoff) {
			kept = append(kept, item)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})
	return kept
}
