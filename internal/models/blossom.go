package models

import (
	"fmt"
	"strings"
	"time"
)

// SocialAccount represents a linked social platform account.
//
// Mutated only via connect/disconnect actions proxied to the backend OAuth endpoints.
type SocialAccount struct {
	ID            string `json:"id"`
	Platform      string `json:"platform"`
	Handle        string `json:"handle"`
	DisplayName   string `json:"display_name"`
	FollowerCount int64  `json:"follower_count"`
	PostCount     int64  `json:"post_count"`
	TokenValid    bool   `json:"token_valid"`
	ConnectedAt   string `json:"connected_at"`
}

// ClassAnalysis is the optional AI-generated breakdown attached to a hook or format class.
type ClassAnalysis struct {
	Blueprint   string   `json:"blueprint"`
	Tactics     []string `json:"tactics"`
	WhenToUse   []string `json:"when_to_use"`
	ExampleIDs  []string `json:"example_ids"`
	GeneratedAt string   `json:"generated_at"`
}

// HookClass represents a viral-hook taxonomy entry with aggregate metrics.
//
// The analyze action triggers backend computation; the client replaces its local copy
// with the response.
type HookClass struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Technique     string         `json:"technique"`
	AvgViews      float64        `json:"avg_views"`
	AvgEngagement float64        `json:"avg_engagement"`
	VideoCount    int            `json:"video_count"`
	Analysis      *ClassAnalysis `json:"class_analysis,omitempty"`
}

// FormatClass represents a structural content category distinct from hook.
type FormatClass struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Technique     string         `json:"technique"`
	AvgViews      float64        `json:"avg_views"`
	AvgEngagement float64        `json:"avg_engagement"`
	VideoCount    int            `json:"video_count"`
	Analysis      *ClassAnalysis `json:"class_analysis,omitempty"`
}

// TrackedHashtag is a hashtag under discovery tracking.
type TrackedHashtag struct {
	ID        string `json:"id"`
	Tag       string `json:"tag"`
	Active    bool   `json:"active"`
	PostCount int64  `json:"post_count"`
	CreatedAt string `json:"created_at"`
}

// Scheduler is a backend-managed recurring discovery job definition,
// surfaced here for CRUD and run-triggering only.
type Scheduler struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Frequency   string   `json:"frequency"`
	Hashtags    []string `json:"hashtags"`
	PostActions []string `json:"post_actions"`
	Active      bool     `json:"active"`
	LastRunAt   string   `json:"last_run_at"`
	NextRunAt   string   `json:"next_run_at"`
}

// SchedulerRun is one execution record of a scheduler. Append-only from the client's perspective.
type SchedulerRun struct {
	ID          string                `json:"id"`
	SchedulerID string                `json:"scheduler_id"`
	Status      string                `json:"status"`
	StartedAt   string                `json:"started_at"`
	FinishedAt  string                `json:"finished_at"`
	PostsFound  int                   `json:"posts_found"`
	Hashtags    []SchedulerRunHashtag `json:"hashtags"`
}

// SchedulerRunHashtag is the per-hashtag breakdown within a run record.
type SchedulerRunHashtag struct {
	Tag        string `json:"tag"`
	Status     string `json:"status"`
	PostsFound int    `json:"posts_found"`
	Error      string `json:"error,omitempty"`
}

// Ticket represents a support thread.
type Ticket struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Category  string          `json:"category"`
	Priority  string          `json:"priority"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
	Messages  []TicketMessage `json:"messages,omitempty"`
}

// TicketMessage is a single message within a support thread.
type TicketMessage struct {
	ID        string `json:"id"`
	TicketID  string `json:"ticket_id"`
	Author    string `json:"author"`
	FromStaff bool   `json:"from_staff"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Plan is a subscription plan offered by the billing backend.
type Plan struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	PriceCents   int      `json:"price_cents"`
	Currency     string   `json:"currency"`
	Interval     string   `json:"interval"`
	Features     []string `json:"features"`
	HashtagLimit int      `json:"hashtag_limit"`
}

// Subscription is the caller's current billing state.
type Subscription struct {
	PlanSlug   string `json:"plan_slug"`
	Status     string `json:"status"`
	RenewsAt   string `json:"renews_at"`
	CanceledAt string `json:"canceled_at,omitempty"`
}

// Active reports whether the subscription currently grants dashboard access.
func (s Subscription) Active() bool {
	return s.Status == "active" || s.Status == "trialing"
}

// TrendingPost is a post surfaced by the trends endpoints.
type TrendingPost struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Author   string `json:"author"`
	Caption  string `json:"caption"`
	Hashtag  string `json:"hashtag"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Shares   int64  `json:"shares"`
	PostedAt string `json:"posted_at"`
	URL      string `json:"url"`
}

// OnboardingStatus mirrors the backend's onboarding checklist.
type OnboardingStatus struct {
	Completed bool     `json:"completed"`
	Steps     []string `json:"steps"`
	Pending   []string `json:"pending"`
}

// Ticket creation inputs are validated locally before the POST; everything else is
// server-validated and surfaced verbatim.

var ticketCategories = map[string]bool{
	"bug_report":      true,
	"billing":         true,
	"feature_request": true,
	"account":         true,
	"other":           true,
}

var ticketPriorities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
	"urgent": true,
}

// NewTicketInput is the payload for creating a support ticket.
type NewTicketInput struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Validate checks the ticket input against the form rules the dashboard enforces.
func (in NewTicketInput) Validate() error {
	if strings.TrimSpace(in.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if !ticketCategories[in.Category] {
		return fmt.Errorf("invalid category: %s", in.Category)
	}
	if !ticketPriorities[in.Priority] {
		return fmt.Errorf("invalid priority: %s", in.Priority)
	}
	return nil
}

var schedulerFrequencies = map[string]bool{
	"hourly": true,
	"daily":  true,
	"weekly": true,
}

// NewSchedulerInput is the payload for creating or updating a scheduler.
type NewSchedulerInput struct {
	Name        string   `json:"name"`
	Frequency   string   `json:"frequency"`
	Hashtags    []string `json:"hashtags"`
	PostActions []string `json:"post_actions"`
	Active      bool     `json:"active"`
}

// Validate checks the scheduler input before submission.
func (in NewSchedulerInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !schedulerFrequencies[in.Frequency] {
		return fmt.Errorf("invalid frequency: %s", in.Frequency)
	}
	if len(in.Hashtags) == 0 {
		return fmt.Errorf("at least one hashtag is required")
	}
	return nil
}

// ClassReport bundles a hook or format class with its example posts for report
// generation. Both class kinds flatten into the same shape.
type ClassReport struct {
	Kind          string         `json:"kind"`
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Technique     string         `json:"technique"`
	AvgViews      float64        `json:"avg_views"`
	AvgEngagement float64        `json:"avg_engagement"`
	VideoCount    int            `json:"video_count"`
	Analysis      *ClassAnalysis `json:"class_analysis,omitempty"`
	Examples      []TrendingPost `json:"examples,omitempty"`
}

// ReportFromHook builds a ClassReport from a hook class and its example posts.
func ReportFromHook(c HookClass, examples []TrendingPost) *ClassReport {
	return &ClassReport{
		Kind:          "hook",
		ID:            c.ID,
		Name:          c.Name,
		Technique:     c.Technique,
		AvgViews:      c.AvgViews,
		AvgEngagement: c.AvgEngagement,
		VideoCount:    c.VideoCount,
		Analysis:      c.Analysis,
		Examples:      examples,
	}
}

// ReportFromFormat builds a ClassReport from a format class and its example posts.
func ReportFromFormat(c FormatClass, examples []TrendingPost) *ClassReport {
	return &ClassReport{
		Kind:          "format",
		ID:            c.ID,
		Name:          c.Name,
		Technique:     c.Technique,
		AvgViews:      c.AvgViews,
		AvgEngagement: c.AvgEngagement,
		VideoCount:    c.VideoCount,
		Analysis:      c.Analysis,
		Examples:      examples,
	}
}

// RunStartedAt parses the run's start timestamp, returning the zero time on failure.
func (r SchedulerRun) RunStartedAt() time.Time {
	t, err := time.Parse(time.RFC3339, r.StartedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
