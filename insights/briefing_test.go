package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savoriq/llm"
	"savoriq/sentiment"
)

type countingGenerator struct {
	text  string
	err   error
	calls int
	last  llm.Request
}

func (g *countingGenerator) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return &llm.Response{Text: g.text}, nil
}

const briefingReply = "```json\n" + `{
  "summary": "Food is carrying the room.",
  "insights": [
    {"title": "Burger Hero", "description": "Feature it.", "type": "win", "steps": ["Add to specials"]},
    {"title": "Cold Coffee", "description": "Check the machine.", "type": "RISK"},
    {"title": "Mystery", "description": "Unknown type.", "type": "rumor"},
    {"description": "No title.", "type": "action"}
  ]
}` + "\n```"

func sampleInput() BriefingInput {
	return BriefingInput{
		BucketSentiment:        []BucketSentiment{{Bucket: sentiment.Food, AvgScore: 0.4, ReviewCount: 3}},
		TopPerformers:          []ItemPerformance{{ItemName: "Burger", Category: CategoryFood, OrderCount: 10, AvgSentiment: ptr(0.4), ReviewCount: 3}},
		Risks:                  []ItemPerformance{},
		RecentFeedbackSnippets: []string{"Great burger."},
	}
}

func TestBriefingGeneratorParsesResponse(t *testing.T) {
	gen := &countingGenerator{text: briefingReply}

	got := NewBriefingGenerator(gen, 10).Generate(context.Background(), sampleInput())

	assert.Equal(t, Briefing{
		Summary: "Food is carrying the room.",
		Insights: []Insight{
			{Title: "Burger Hero", Description: "Feature it.", Type: InsightWin, Steps: []string{"Add to specials"}},
			{Title: "Cold Coffee", Description: "Check the machine.", Type: InsightRisk, Steps: []string{}},
		},
	}, got)
	assert.Equal(t, "briefing", gen.last.Purpose)
	assert.Contains(t, gen.last.Prompt, "RESTAURANT DATA:")
	assert.Contains(t, gen.last.Prompt, `"item_name": "Burger"`)
}

func TestBriefingGeneratorFallback(t *testing.T) {
	cases := map[string]*BriefingGenerator{
		"generator error": NewBriefingGenerator(&countingGenerator{err: errors.New("503")}, 10),
		"malformed json":  NewBriefingGenerator(&countingGenerator{text: "Here is your briefing!"}, 10),
		"no generator":    NewBriefingGenerator(nil, 10),
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			got := g.Generate(context.Background(), sampleInput())
			assert.Equal(t, FallbackBriefing(), got)
			require.Len(t, got.Insights, 1)
			assert.Equal(t, "API Unavailable", got.Insights[0].Title)
			assert.Equal(t, InsightRisk, got.Insights[0].Type)
		})
	}
}

func TestParseBriefingDefaultsSummary(t *testing.T) {
	got, err := ParseBriefing(`{"insights": []}`)

	require.NoError(t, err)
	assert.Equal(t, "No summary available.", got.Summary)
	assert.Empty(t, got.Insights)
}

func TestBriefingGeneratorTrimsSnippets(t *testing.T) {
	in := sampleInput()
	in.RecentFeedbackSnippets = []string{"a", "b", "c", "d"}

	trimmed := NewBriefingGenerator(nil, 2).Trim(in)

	assert.Equal(t, []string{"a", "b"}, trimmed.RecentFeedbackSnippets)
	assert.Len(t, in.RecentFeedbackSnippets, 4)
	assert.Len(t, NewBriefingGenerator(nil, 0).Trim(in).RecentFeedbackSnippets, 4)
}
