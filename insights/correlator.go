// Package insights turns stored review sentiment and the order catalog into
// item rankings and the manager briefing.
package insights

import (
	"sort"
	"strings"

	"savoriq/sentiment"
)

// rankLimit caps the top performer and risk lists.
const rankLimit = 5

// Category is the order category of a catalog item.
type Category string

const (
	CategoryFood  Category = "food"
	CategoryDrink Category = "drink"
)

// Bucket maps an item category to the sentiment bucket attributed to it.
// Ambiance is never attributed to an item.
func (c Category) Bucket() (sentiment.Bucket, bool) {
	switch c {
	case CategoryFood:
		return sentiment.Food, true
	case CategoryDrink:
		return sentiment.Drink, true
	}
	return "", false
}

// CatalogItem is an ordered item aggregated by (item_name, category).
type CatalogItem struct {
	ItemName   string   `json:"item_name"`
	Category   Category `json:"category"`
	OrderCount int      `json:"order_count"`
}

// Score is one stored bucket score of a review.
type Score struct {
	Bucket sentiment.Bucket `json:"bucket"`
	Score  float64          `json:"score"`
}

// ScoredReview is a review's text with its stored sentiment scores.
type ScoredReview struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Scores []Score `json:"scores"`
}

// ItemPerformance is the sentiment attributed to one catalog item.
// AvgSentiment is nil when no review contributed a score.
type ItemPerformance struct {
	ItemName     string   `json:"item_name"`
	Category     Category `json:"category"`
	OrderCount   int      `json:"order_count"`
	AvgSentiment *float64 `json:"avg_sentiment"`
	ReviewCount  int      `json:"review_count"`
}

func (p ItemPerformance) sentimentOrZero() float64 {
	if p.AvgSentiment == nil {
		return 0
	}
	return *p.AvgSentiment
}

// ItemRanking is the correlation result for the whole catalog.
type ItemRanking struct {
	Items         []ItemPerformance `json:"items"`
	TopPerformers []ItemPerformance `json:"top_performers"`
	Risks         []ItemPerformance `json:"risks"`
}

// CorrelateItems attributes review sentiment to catalog items.
//
// A review mentions an item when its lowercased text contains the lowercased
// item name. Only the review's scores in the item's bucket are collected;
// ReviewCount is the number of collected scores, not of matching reviews.
// The result keeps catalog order.
func CorrelateItems(reviews []ScoredReview, catalog []CatalogItem) []ItemPerformance {
	lowered := make([]string, len(reviews))
	for i, r := range reviews {
		lowered[i] = strings.ToLower(r.Text)
	}

	out := make([]ItemPerformance, 0, len(catalog))
	for _, item := range catalog {
		perf := ItemPerformance{
			ItemName:   item.ItemName,
			Category:   item.Category,
			OrderCount: item.OrderCount,
		}

		bucket, ok := item.Category.Bucket()
		if ok {
			name := strings.ToLower(item.ItemName)
			var sum float64
			var n int
			for i, r := range reviews {
				if !strings.Contains(lowered[i], name) {
					continue
				}
				for _, s := range r.Scores {
					if s.Bucket == bucket {
						sum += s.Score
						n++
					}
				}
			}
			if n > 0 {
				avg := sentiment.Round2(sum / float64(n))
				perf.AvgSentiment = &avg
				perf.ReviewCount = n
			}
		}
		out = append(out, perf)
	}
	return out
}

// RankItems orders items by order count (descending, stable) and splits them
// into the first rankLimit items with non-negative sentiment and the first
// rankLimit with negative sentiment. Missing sentiment counts as zero.
func RankItems(items []ItemPerformance) ItemRanking {
	sorted := make([]ItemPerformance, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderCount > sorted[j].OrderCount
	})

	top := make([]ItemPerformance, 0, rankLimit)
	risks := make([]ItemPerformance, 0, rankLimit)
	for _, p := range sorted {
		if p.sentimentOrZero() >= 0 {
			if len(top) < rankLimit {
				top = append(top, p)
			}
		} else if len(risks) < rankLimit {
			risks = append(risks, p)
		}
	}
	return ItemRanking{Items: sorted, TopPerformers: top, Risks: risks}
}

// Correlate runs CorrelateItems followed by RankItems.
func Correlate(reviews []ScoredReview, catalog []CatalogItem) ItemRanking {
	return RankItems(CorrelateItems(reviews, catalog))
}
