package insights

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"savoriq/config"
	"savoriq/llm"
	"savoriq/sentiment"
)

const briefingPrompt = `You are a strategic restaurant consultant. Analyze the provided restaurant performance data and generate a high-level briefing for the owner.

Input Data:
1. Bucket Sentiment: Average sentiment scores for Food, Drink, and Ambiance.
2. Top Performers: Best-selling items with high sentiment.
3. Risk Items: Best-selling items with poor sentiment.
4. Recent Trends: Specific highlights from guest feedback.

Output Requirements:
- A concise summary (2-3 sentences) of the overall restaurant health.
- Exactly 3-4 actionable insights categorized as:
  - "win": Celebrate the success of a popular item or practice.
  - "risk": Identify a critical issue that needs immediate attention.
  - "action": Sustained improvements or new opportunities.
- Each insight may carry a short list of concrete "steps".

Return ONLY valid JSON in this exact format:
{
  "summary": "Overall, the restaurant is performing well with high marks in ambiance, though beverage sentiment has dipped slightly.",
  "insights": [
    {"title": "The Espresso Bloom", "description": "Your espresso is a top-tier performer; consider featuring it in a brunch promotion.", "type": "win", "steps": []},
    {"title": "Service Speed", "description": "Guests are mentioning slow service on Friday nights; look into staffing levels.", "type": "risk", "steps": []}
  ]
}

RESTAURANT DATA:
`

const (
	defaultMaxSnippets = 10
	noSummary          = "No summary available."
	fallbackSummary    = "Unable to generate AI briefing at this time. Please check your manual analytics below."
)

// Insight types.
const (
	InsightWin    = "win"
	InsightRisk   = "risk"
	InsightAction = "action"
)

var ErrNoGenerator = errors.New("briefing generator is not configured")

// BucketSentiment is the average stored score of one bucket.
type BucketSentiment struct {
	Bucket      sentiment.Bucket `json:"bucket"`
	AvgScore    float64          `json:"avg_score"`
	ReviewCount int              `json:"review_count"`
}

// BriefingInput is the analytics snapshot a briefing is generated from.
// Its JSON form is both the prompt payload and the cache key material.
type BriefingInput struct {
	BucketSentiment        []BucketSentiment `json:"bucket_sentiment"`
	TopPerformers          []ItemPerformance `json:"top_performers"`
	Risks                  []ItemPerformance `json:"risks"`
	RecentFeedbackSnippets []string          `json:"recent_feedback_snippets"`
}

// Insight is one actionable point of a manager briefing.
type Insight struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Steps       []string `json:"steps"`
}

// Briefing is the narrative summary shown to the restaurant manager.
type Briefing struct {
	Summary  string    `json:"summary"`
	Insights []Insight `json:"insights"`
}

// FallbackBriefing is returned whenever the narrative cannot be generated.
func FallbackBriefing() Briefing {
	return Briefing{
		Summary: fallbackSummary,
		Insights: []Insight{{
			Title:       "API Unavailable",
			Description: "The AI insight engine is currently offline. Review your top performers and risks manually.",
			Type:        InsightRisk,
			Steps:       []string{},
		}},
	}
}

// BriefingGenerator asks a text generator for a manager briefing.
// A nil generator always yields the fallback briefing.
type BriefingGenerator struct {
	gen         llm.TextGenerator
	maxSnippets int
}

func NewBriefingGenerator(gen llm.TextGenerator, maxSnippets int) *BriefingGenerator {
	if maxSnippets <= 0 {
		maxSnippets = defaultMaxSnippets
	}
	return &BriefingGenerator{gen: gen, maxSnippets: maxSnippets}
}

// Trim limits the snippets carried by the input. Apply it before hashing so
// the cache key matches what is actually sent.
func (g *BriefingGenerator) Trim(in BriefingInput) BriefingInput {
	if len(in.RecentFeedbackSnippets) > g.maxSnippets {
		in.RecentFeedbackSnippets = in.RecentFeedbackSnippets[:g.maxSnippets]
	}
	return in
}

// Generate never fails: any error is logged and the fallback briefing returned.
func (g *BriefingGenerator) Generate(ctx context.Context, in BriefingInput) Briefing {
	b, err := g.generate(ctx, g.Trim(in))
	if err != nil {
		config.Logger.Warnf("manager briefing generation failed: %v", err)
		return FallbackBriefing()
	}
	return b
}

func (g *BriefingGenerator) generate(ctx context.Context, in BriefingInput) (Briefing, error) {
	if g.gen == nil {
		return Briefing{}, ErrNoGenerator
	}
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return Briefing{}, err
	}
	resp, err := g.gen.Generate(ctx, llm.Request{
		Purpose: "briefing",
		Prompt:  briefingPrompt + string(data),
		JSON:    true,
	})
	if err != nil {
		return Briefing{}, err
	}
	return ParseBriefing(resp.Text)
}

type rawBriefing struct {
	Summary  *string           `json:"summary"`
	Insights []json.RawMessage `json:"insights"`
}

// ParseBriefing decodes a model response into a Briefing. Insights with an
// unknown type or without a title are dropped.
func ParseBriefing(raw string) (Briefing, error) {
	var payload rawBriefing
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &payload); err != nil {
		return Briefing{}, err
	}

	b := Briefing{Summary: noSummary, Insights: []Insight{}}
	if payload.Summary != nil && strings.TrimSpace(*payload.Summary) != "" {
		b.Summary = *payload.Summary
	}
	for _, rawInsight := range payload.Insights {
		var ins Insight
		if err := json.Unmarshal(rawInsight, &ins); err != nil {
			continue
		}
		ins.Type = strings.ToLower(strings.TrimSpace(ins.Type))
		if ins.Title == "" || !validInsightType(ins.Type) {
			continue
		}
		if ins.Steps == nil {
			ins.Steps = []string{}
		}
		b.Insights = append(b.Insights, ins)
	}
	return b, nil
}

func validInsightType(t string) bool {
	switch t {
	case InsightWin, InsightRisk, InsightAction:
		return true
	}
	return false
}
