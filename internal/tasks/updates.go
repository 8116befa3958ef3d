package tasks

import (
	"fmt"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchAccounts Phase = iota
	FetchHooks
	FetchFormats
	FetchHashtags
	FetchSchedulers
	FetchTrends
	FetchTickets
	FetchBilling
	FetchOnboarding
	FetchClass
	ExportReport
)

func (p Phase) String() string {
	switch p {
	case FetchAccounts:
		return "fetch_accounts"
	case FetchHooks:
		return "fetch_hooks"
	case FetchFormats:
		return "fetch_formats"
	case FetchHashtags:
		return "fetch_hashtags"
	case FetchSchedulers:
		return "fetch_schedulers"
	case FetchTrends:
		return "fetch_trends"
	case FetchTickets:
		return "fetch_tickets"
	case FetchBilling:
		return "fetch_billing"
	case FetchOnboarding:
		return "fetch_onboarding"
	case FetchClass:
		return "fetch_class"
	case ExportReport:
		return "export_report"
	default:
		return ""
	}
}

func operationUpdate(endpoint endpointOperation, step int, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   endpoint.phase,
		Step:    step,
		Total:   total,
		Message: endpoint.message,
	}
}

func fetchingClassesUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchClass,
		Step:    step,
		Total:   total,
		Message: "Fetching class reports...",
	}
}

func foundClassUpdate(step, total int, report *models.ClassReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchClass,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found class: %s (%d example posts)", report.Name, len(report.Examples)),
		Data:    report,
	}
}

func exportingReportUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
