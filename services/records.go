package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"savoriq/models"
)

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the date formats used by review exports. Values
// without a zone are taken as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q", raw)
	}
	return t.UTC(), nil
}

func missing(field string) error {
	return fmt.Errorf("field required: %s", field)
}

type normalizedReview struct {
	Platform         string
	PlatformReviewID string
	GuestName        string
	GuestEmail       *string
	Rating           float64
	Content          string
	ReviewedAt       time.Time
}

type yelpRecord struct {
	ReviewID   *string  `json:"review_id"`
	GuestName  *string  `json:"guest_name"`
	GuestEmail *string  `json:"guest_email"`
	Rating     *float64 `json:"rating"`
	Text       *string  `json:"text"`
	Date       *string  `json:"date"`
}

type googleRecord struct {
	ReviewID    *string  `json:"review_id"`
	AuthorName  *string  `json:"author_name"`
	AuthorEmail *string  `json:"author_email"`
	Rating      *float64 `json:"rating"`
	Text        *string  `json:"text"`
	Time        *string  `json:"time"`
}

// normalizeReview maps a Yelp or Google export record onto one shape.
func normalizeReview(platform string, raw json.RawMessage) (normalizedReview, error) {
	var (
		id, name, email, text, when *string
		rating                      *float64
		nameField, whenField        = "guest_name", "date"
	)
	switch platform {
	case models.PlatformYelp:
		var r yelpRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return normalizedReview{}, fmt.Errorf("invalid record: %w", err)
		}
		id, name, email, rating, text, when = r.ReviewID, r.GuestName, r.GuestEmail, r.Rating, r.Text, r.Date
	case models.PlatformGoogle:
		var r googleRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return normalizedReview{}, fmt.Errorf("invalid record: %w", err)
		}
		id, name, email, rating, text, when = r.ReviewID, r.AuthorName, r.AuthorEmail, r.Rating, r.Text, r.Time
		nameField, whenField = "author_name", "time"
	default:
		return normalizedReview{}, fmt.Errorf("unsupported platform %q", platform)
	}

	switch {
	case id == nil:
		return normalizedReview{}, missing("review_id")
	case name == nil:
		return normalizedReview{}, missing(nameField)
	case rating == nil:
		return normalizedReview{}, missing("rating")
	case text == nil:
		return normalizedReview{}, missing("text")
	case when == nil:
		return normalizedReview{}, missing(whenField)
	}
	if *rating < 0 || *rating > 5 {
		return normalizedReview{}, fmt.Errorf("rating must be between 0 and 5, got %v", *rating)
	}
	reviewedAt, err := ParseTimestamp(*when)
	if err != nil {
		return normalizedReview{}, err
	}

	return normalizedReview{
		Platform:         platform,
		PlatformReviewID: *id,
		GuestName:        *name,
		GuestEmail:       trimmedOrNil(email),
		Rating:           *rating,
		Content:          *text,
		ReviewedAt:       reviewedAt,
	}, nil
}

type orderRecord struct {
	GuestName  *string  `json:"guest_name"`
	GuestEmail *string  `json:"guest_email"`
	ItemName   *string  `json:"item_name"`
	Category   *string  `json:"category"`
	Price      *float64 `json:"price"`
	Quantity   *int     `json:"quantity"`
	OrderedAt  *string  `json:"ordered_at"`
}

type normalizedOrder struct {
	GuestName  string
	GuestEmail *string
	ItemName   string
	Category   string
	Price      float64
	Quantity   int
	OrderedAt  time.Time
}

var errBlankItemName = errors.New("item_name must not be blank")

func decodeOrder(raw json.RawMessage) (normalizedOrder, error) {
	var r orderRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return normalizedOrder{}, fmt.Errorf("invalid record: %w", err)
	}
	switch {
	case r.GuestName == nil:
		return normalizedOrder{}, missing("guest_name")
	case r.ItemName == nil:
		return normalizedOrder{}, missing("item_name")
	case r.Category == nil:
		return normalizedOrder{}, missing("category")
	case r.Price == nil:
		return normalizedOrder{}, missing("price")
	case r.OrderedAt == nil:
		return normalizedOrder{}, missing("ordered_at")
	}

	// a blank name would be a substring of every review
	if strings.TrimSpace(*r.ItemName) == "" {
		return normalizedOrder{}, errBlankItemName
	}
	if *r.Category != models.CategoryFood && *r.Category != models.CategoryDrink {
		return normalizedOrder{}, fmt.Errorf("category must be 'food' or 'drink', got %q", *r.Category)
	}
	if *r.Price <= 0 {
		return normalizedOrder{}, fmt.Errorf("price must be greater than 0, got %v", *r.Price)
	}
	quantity := 1
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	if quantity < 1 {
		return normalizedOrder{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	orderedAt, err := ParseTimestamp(*r.OrderedAt)
	if err != nil {
		return normalizedOrder{}, err
	}

	return normalizedOrder{
		GuestName:  *r.GuestName,
		GuestEmail: trimmedOrNil(r.GuestEmail),
		ItemName:   *r.ItemName,
		Category:   *r.Category,
		Price:      *r.Price,
		Quantity:   quantity,
		OrderedAt:  orderedAt,
	}, nil
}
