// Package tasks orchestrates long-running dashboard operations with real-time progress reporting.
//
// # Core Operations
//
// The [DashboardEngine] exposes three operations:
//
//  1. [DashboardEngine.Dump] : Fetch the full dashboard dataset
//     - Retrieves accounts, classes, hashtags, schedulers, trends, tickets, billing state
//     - Returns structured data for backup or offline inspection
//
//  2. [DashboardEngine.ExportReports] : Bulk class report export
//     - Fetches each class with its example posts
//     - Writes per-class report files via a rate-limited worker pool
//     - Generates a manifest file summarizing the results
//
//  3. [Poller] : Periodic dashboard refresh
//     - Invokes a caller-supplied refresh function on a fixed interval
//     - Stops when its context is cancelled
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
