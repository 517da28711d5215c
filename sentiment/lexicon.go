package sentiment

// Bucket is one of the fixed review sentiment categories.
type Bucket string

const (
	Food     Bucket = "food"
	Drink    Bucket = "drink"
	Ambiance Bucket = "ambiance"
)

// Buckets lists every bucket in classification order.
var Buckets = []Bucket{Food, Drink, Ambiance}

// ParseBucket reports whether s names a known bucket.
func ParseBucket(s string) (Bucket, bool) {
	switch Bucket(s) {
	case Food, Drink, Ambiance:
		return Bucket(s), true
	}
	return "", false
}

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

var foodKeywords = newWordSet(
	"food", "dish", "meal", "plate", "menu", "chef", "cook", "taste",
	"flavor", "delicious", "bland", "stale", "fresh", "appetizer", "entree",
	"dessert", "salad", "burger", "pizza", "pasta", "sushi", "breakfast",
	"lunch", "dinner", "brunch", "portion", "ingredient",
)

var drinkKeywords = newWordSet(
	"drink", "coffee", "latte", "espresso", "cappuccino", "tea", "beer",
	"wine", "cocktail", "juice", "smoothie", "soda", "water", "bar",
	"barista", "brew", "roast", "pour", "mocktail", "matcha", "lassi",
	"lemonade", "shake", "sake", "spirit", "liquor",
)

var ambianceKeywords = newWordSet(
	"ambiance", "atmosphere", "decor", "vibe", "music", "lighting",
	"cozy", "loud", "quiet", "crowded", "clean", "dirty", "space",
	"seating", "patio", "outdoor", "interior", "design", "noise",
	"comfortable", "relaxing", "aesthetic", "warm", "welcoming",
)

var positiveWords = newWordSet(
	"great", "amazing", "excellent", "wonderful", "fantastic", "love",
	"perfect", "best", "good", "nice", "lovely", "delicious", "fresh",
	"beautiful", "cozy", "friendly", "relaxing", "comfortable", "superb",
	"outstanding", "incredible", "awesome", "refreshing", "tasty",
)

var negativeWords = newWordSet(
	"bad", "terrible", "awful", "worst", "hate", "disgusting", "horrible",
	"bland", "stale", "dirty", "rude", "slow", "cold", "loud", "crowded",
	"overpriced", "disappointing", "mediocre", "poor", "nasty", "gross",
	"unpleasant",
)

// Keywords returns the keyword set for bucket, or nil for an unknown bucket.
func Keywords(b Bucket) map[string]struct{} {
	switch b {
	case Food:
		return foodKeywords
	case Drink:
		return drinkKeywords
	case Ambiance:
		return ambianceKeywords
	}
	return nil
}
