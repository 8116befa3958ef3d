// Package ui implements an interactive terminal dashboard using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the analytics backend:
//  1. [MenuView] : Top-level dashboard navigation
//  2. [HookListView] : Browse hook classes with pagination
//  3. [HookDetailView] : Class metrics plus the AI analysis breakdown
//  4. [TrendListView] : Trending posts with abbreviated counts
//  5. [DiscoveryView] : Tracked hashtags with live discovery progress
//  6. [SupportListView] : Support ticket threads
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Live discovery frames flow through a channel from the stream Subscriber, merged by
// the Tracker; completed runs trigger a generation-stamped reload so a fetch started
// before a newer completion cannot overwrite fresher data.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, [/], a, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
