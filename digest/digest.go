// Package digest posts the daily manager briefing to a Slack channel on a
// cron schedule.
package digest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"

	"savoriq/config"
	"savoriq/insights"
)

// ErrDisabled is returned by New when the schedule, channel or token is missing.
var ErrDisabled = errors.New("digest is disabled")

// BriefingSource produces the current manager briefing.
type BriefingSource interface {
	Briefing(ctx context.Context) (insights.Briefing, error)
}

// Poster delivers a rendered message to a channel.
type Poster interface {
	Post(ctx context.Context, channel, text string) error
}

// SlackPoster posts through the Slack Web API.
type SlackPoster struct {
	api *slack.Client
}

func NewSlackPoster(token string) *SlackPoster {
	return &SlackPoster{api: slack.New(token)}
}

func (p *SlackPoster) Post(ctx context.Context, channel, text string) error {
	_, _, err := p.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	return err
}

// SlackToken 는 SLACK_BOT_TOKEN 환경변수에서만 읽는다.
func SlackToken() string {
	return strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN"))
}

// ParseSchedule accepts a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(strings.TrimSpace(expr))
}

type Job struct {
	source   BriefingSource
	poster   Poster
	channel  string
	schedule cron.Schedule
	loc      *time.Location
	now      func() time.Time
}

// New 는 설정이 모두 갖춰졌을 때만 Job 을 만든다.
// poster 가 nil 이면 SLACK_BOT_TOKEN 으로 SlackPoster 를 생성한다.
func New(cfg config.DigestConfig, loc *time.Location, source BriefingSource, poster Poster) (*Job, error) {
	if strings.TrimSpace(cfg.Schedule) == "" || strings.TrimSpace(cfg.SlackChannel) == "" {
		return nil, ErrDisabled
	}
	if poster == nil {
		token := SlackToken()
		if token == "" {
			return nil, ErrDisabled
		}
		poster = NewSlackPoster(token)
	}
	sched, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", cfg.Schedule, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Job{
		source:   source,
		poster:   poster,
		channel:  cfg.SlackChannel,
		schedule: sched,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// Next returns the next run time after t in the job's zone.
func (j *Job) Next(t time.Time) time.Time {
	return j.schedule.Next(t.In(j.loc))
}

// RunOnce fetches the briefing and posts it.
func (j *Job) RunOnce(ctx context.Context) error {
	b, err := j.source.Briefing(ctx)
	if err != nil {
		return fmt.Errorf("load briefing: %w", err)
	}
	msg := Format(b, j.now().In(j.loc))
	if err := j.poster.Post(ctx, j.channel, msg); err != nil {
		return fmt.Errorf("post digest to %s: %w", j.channel, err)
	}
	return nil
}

// Start runs the job on its schedule until ctx is cancelled.
func (j *Job) Start(ctx context.Context) {
	for {
		now := j.now().In(j.loc)
		next := j.Next(now)
		wait := next.Sub(now)
		config.Logger.Infof("[Digest] next run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := j.RunOnce(ctx); err != nil {
			config.Logger.Errorf("[Digest] run failed: %v", err)
			continue
		}
		config.Logger.Infof("[Digest] posted briefing to %s", j.channel)
	}
}

var insightMarks = map[string]string{
	insights.InsightWin:    ":white_check_mark:",
	insights.InsightRisk:   ":warning:",
	insights.InsightAction: ":arrow_forward:",
}

// Format renders a briefing as Slack mrkdwn.
func Format(b insights.Briefing, day time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Daily briefing* (%s)\n", day.Format("2006-01-02"))
	sb.WriteString(b.Summary)
	sb.WriteString("\n")

	for _, in := range b.Insights {
		mark := insightMarks[in.Type]
		if mark == "" {
			mark = "•"
		}
		fmt.Fprintf(&sb, "\n%s *%s*", mark, in.Title)
		if in.Description != "" {
			fmt.Fprintf(&sb, ": %s", in.Description)
		}
		sb.WriteString("\n")
		for _, step := range in.Steps {
			fmt.Fprintf(&sb, "    - %s\n", step)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
