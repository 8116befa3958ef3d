// package tasks implements long-running dashboard operations.
//
// The core type is DashboardEngine, which orchestrates full data dumps and bulk
// report exports. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// EndpointResult represents the result of fetching data from a single API endpoint.
type EndpointResult struct {
	Endpoint string
	Data     any
	Error    error
}

// DumpResult contains all data fetched from the dashboard backend.
type DumpResult struct {
	Accounts      any              // Linked social accounts
	HookClasses   any              // Viral hook taxonomy
	FormatClasses any              // Format taxonomy
	Hashtags      any              // Tracked hashtags
	Schedulers    any              // Discovery schedulers
	Trends        any              // Trending posts
	Tickets       any              // Support tickets
	Plans         any              // Billing plans
	Subscription  any              // Current subscription
	Onboarding    any              // Onboarding checklist
	Errors        []EndpointResult // Failed endpoint fetches
}

// DumpData is the JSON-serializable view of a DumpResult.
type DumpData struct {
	Accounts      any   `json:"accounts"`
	HookClasses   any   `json:"hook_classes,omitempty"`
	FormatClasses any   `json:"format_classes,omitempty"`
	Hashtags      any   `json:"hashtags,omitempty"`
	Schedulers    any   `json:"schedulers,omitempty"`
	Trends        any   `json:"trends,omitempty"`
	Tickets       any   `json:"tickets,omitempty"`
	Plans         any   `json:"plans,omitempty"`
	Subscription  any   `json:"subscription,omitempty"`
	Onboarding    any   `json:"onboarding,omitempty"`
	Errors        []any `json:"errors,omitempty"`
}

// Data converts a DumpResult into its serializable form.
func (r *DumpResult) Data() DumpData {
	data := DumpData{
		Accounts:      r.Accounts,
		HookClasses:   r.HookClasses,
		FormatClasses: r.FormatClasses,
		Hashtags:      r.Hashtags,
		Schedulers:    r.Schedulers,
		Trends:        r.Trends,
		Tickets:       r.Tickets,
		Plans:         r.Plans,
		Subscription:  r.Subscription,
		Onboarding:    r.Onboarding,
	}
	for _, e := range r.Errors {
		data.Errors = append(data.Errors, map[string]string{
			"endpoint": e.Endpoint,
			"error":    e.Error.Error(),
		})
	}
	return data
}

type endpointOperation struct {
	name    string
	path    string
	target  *any
	phase   Phase
	message string
}

// APIClient defines the interface for making raw API requests to the backend.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type APIClient interface {
	Get(ctx context.Context, path string) (*services.APIResponse, error)
}

// ClassFetcher defines the typed class lookups the export task needs.
// Satisfied by [services.Client].
type ClassFetcher interface {
	HookClass(ctx context.Context, id string) (*models.HookClass, error)
	HookClassVideos(ctx context.Context, id string, opts services.ClassListOptions) (*services.Paginated[models.TrendingPost], error)
	FormatClass(ctx context.Context, id string) (*models.FormatClass, error)
}

// DashboardEngine implements dump and export operations over the backend API.
type DashboardEngine struct {
	classes ClassFetcher
	api     APIClient
}

// NewDashboardEngine creates a new DashboardEngine with the provided clients.
func NewDashboardEngine(classes ClassFetcher, api APIClient) *DashboardEngine {
	return &DashboardEngine{
		classes: classes,
		api:     api,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *DashboardEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Dump fetches the full dashboard dataset from the backend.
//
// Endpoint failures are collected rather than aborting the dump; callers inspect
// DumpResult.Errors for partial results.
func (e *DashboardEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{
		Errors: []EndpointResult{},
	}

	endpoints := []endpointOperation{
		{name: "accounts", path: "/api/social/accounts", target: &result.Accounts, phase: FetchAccounts, message: "Fetching linked accounts..."},
		{name: "hook_classes", path: "/api/analysis/hooks", target: &result.HookClasses, phase: FetchHooks, message: "Fetching hook classes..."},
		{name: "format_classes", path: "/api/analysis/formats", target: &result.FormatClasses, phase: FetchFormats, message: "Fetching format classes..."},
		{name: "hashtags", path: "/api/analysis/trending/hashtags", target: &result.Hashtags, phase: FetchHashtags, message: "Fetching tracked hashtags..."},
		{name: "schedulers", path: "/api/management/schedulers", target: &result.Schedulers, phase: FetchSchedulers, message: "Fetching schedulers..."},
		{name: "trends", path: "/api/trends/posts", target: &result.Trends, phase: FetchTrends, message: "Fetching trending posts..."},
		{name: "tickets", path: "/api/support/tickets", target: &result.Tickets, phase: FetchTickets, message: "Fetching support tickets..."},
		{name: "plans", path: "/api/billing/plans", target: &result.Plans, phase: FetchBilling, message: "Fetching plans..."},
		{name: "subscription", path: "/api/billing/subscription", target: &result.Subscription, phase: FetchBilling, message: "Fetching subscription..."},
		{name: "onboarding", path: "/api/onboarding/status", target: &result.Onboarding, phase: FetchOnboarding, message: "Fetching onboarding status..."},
	}

	totalSteps := len(endpoints)

	for i, endpoint := range endpoints {
		e.sendProgress(progress, operationUpdate(endpoint, i+1, totalSteps))

		resp, err := e.api.Get(ctx, endpoint.path)
		if err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			} else {
				errMsg = fmt.Sprintf("status %d", resp.StatusCode)
			}
			result.Errors = append(result.Errors, EndpointResult{
				Endpoint: endpoint.path,
				Error:    fmt.Errorf("%s", errMsg),
			})
		} else {
			*endpoint.target = resp.JSONData
		}
	}

	return result, nil
}
