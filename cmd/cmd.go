// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "Page number (1-based)",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Items per page",
			Value: 20,
		},
	}
}

// setupCommand handles setup operations for the local cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize local cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with the Blossom backend via browser",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "token",
						Usage: "Bearer token to store directly, skipping the browser flow",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored credential",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the current identity and dashboard access",
				Flags:  jsonFlags(),
				Action: r.AuthWhoami,
			},
		},
	}
}

// hooksCommand handles hook class operations
func hooksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "hooks",
		Usage: "Viral hook class operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List hook classes",
				Flags: append(append(jsonFlags(), pageFlags()...),
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort key (avg_views, avg_engagement, video_count)",
					},
				),
				Action: r.HooksList,
			},
			{
				Name:  "show",
				Usage: "Show a hook class with its analysis",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.HooksShow,
			},
			{
				Name:  "analyze",
				Usage: "Trigger AI analysis for a hook class",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.HooksAnalyze,
			},
			{
				Name:  "export",
				Usage: "Bulk export hook class reports",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "ids",
						Usage: "Comma-separated class IDs (default: all)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of export workers",
						Value: 5,
					},
				},
				Action: r.HooksExport,
			},
		},
	}
}

// formatsCommand handles format class operations
func formatsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "Content format class operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List format classes",
				Flags: append(append(jsonFlags(), pageFlags()...),
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort key (avg_views, avg_engagement, video_count)",
					},
				),
				Action: r.FormatsList,
			},
			{
				Name:  "show",
				Usage: "Show a format class with its analysis",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.FormatsShow,
			},
			{
				Name:  "analyze",
				Usage: "Trigger AI analysis for a format class",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.FormatsAnalyze,
			},
		},
	}
}

// trendsCommand handles trending content operations
func trendsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "trends",
		Usage: "Trending content operations",
		Commands: []*cli.Command{
			{
				Name:  "posts",
				Usage: "List trending posts",
				Flags: append(append(jsonFlags(), pageFlags()...),
					&cli.StringFlag{
						Name:  "hashtag",
						Usage: "Filter by hashtag",
					},
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Filter by platform (tiktok, instagram, youtube)",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save results as CSV",
					},
				),
				Action: r.TrendsPosts,
			},
			{
				Name:   "hashtags",
				Usage:  "List trending hashtags",
				Flags:  jsonFlags(),
				Action: r.TrendsHashtags,
			},
		},
	}
}

// discoveryCommand handles hashtag discovery operations
func discoveryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "discovery",
		Usage: "Hashtag discovery operations",
		Commands: []*cli.Command{
			{
				Name:   "hashtags",
				Usage:  "List tracked hashtags",
				Flags:  jsonFlags(),
				Action: r.DiscoveryHashtags,
			},
			{
				Name:  "track",
				Usage: "Track a hashtag for discovery",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "tag"},
				},
				Action: r.DiscoveryTrack,
			},
			{
				Name:  "untrack",
				Usage: "Stop tracking a hashtag",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.DiscoveryUntrack,
			},
			{
				Name:   "run",
				Usage:  "Trigger a manual discovery run",
				Action: r.DiscoveryRun,
			},
			{
				Name:  "watch",
				Usage: "Stream live discovery progress to the terminal",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Stop watching after this duration (0 = until stream closes)",
					},
				},
				Action: r.DiscoveryWatch,
			},
			{
				Name:  "runs",
				Usage: "Show discovery run history",
				Flags: append(jsonFlags(), pageFlags()...),
				Action: r.DiscoveryRuns,
			},
			schedulersCommand(r),
		},
	}
}

// schedulersCommand handles scheduler CRUD nested under discovery.
func schedulersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "schedulers",
		Aliases: []string{"sched"},
		Usage:   "Discovery scheduler operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List schedulers",
				Flags:  jsonFlags(),
				Action: r.SchedulersList,
			},
			{
				Name:  "show",
				Usage: "Show a scheduler and its recent runs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.SchedulersShow,
			},
			{
				Name:  "create",
				Usage: "Create a scheduler",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Scheduler name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "frequency",
						Usage:    "Run frequency (hourly, daily, weekly)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "hashtags",
						Usage:    "Comma-separated hashtags",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "post-actions",
						Usage: "Comma-separated post actions (analyze, download)",
					},
					&cli.BoolFlag{
						Name:  "active",
						Usage: "Start the scheduler immediately",
						Value: true,
					},
				},
				Action: r.SchedulersCreate,
			},
			{
				Name:  "update",
				Usage: "Update a scheduler",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Scheduler name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "frequency",
						Usage:    "Run frequency (hourly, daily, weekly)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "hashtags",
						Usage:    "Comma-separated hashtags",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "post-actions",
						Usage: "Comma-separated post actions (analyze, download)",
					},
					&cli.BoolFlag{
						Name:  "active",
						Usage: "Keep the scheduler active",
						Value: true,
					},
				},
				Action: r.SchedulersUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a scheduler",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SchedulersDelete,
			},
			{
				Name:  "run",
				Usage: "Trigger a scheduler run now",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SchedulersRun,
			},
		},
	}
}

// socialCommand handles linked social account operations
func socialCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "social",
		Usage: "Linked social account operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List connected accounts",
				Flags:  jsonFlags(),
				Action: r.SocialList,
			},
			{
				Name:  "connect",
				Usage: "Connect a social account via browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "platform"},
				},
				Action: r.SocialConnect,
			},
			{
				Name:  "disconnect",
				Usage: "Disconnect a social account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SocialDisconnect,
			},
		},
	}
}

// onboardingCommand exposes the onboarding checklist
func onboardingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "onboarding",
		Usage: "Onboarding checklist operations",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show onboarding progress",
				Flags:  jsonFlags(),
				Action: r.OnboardingStatus,
			},
			{
				Name:  "complete",
				Usage: "Mark an onboarding step done",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "step"},
				},
				Flags:  jsonFlags(),
				Action: r.OnboardingComplete,
			},
		},
	}
}

// supportCommand handles support ticket operations
func supportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "support",
		Usage: "Support ticket operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List support tickets",
				Flags:  jsonFlags(),
				Action: r.SupportList,
			},
			{
				Name:  "show",
				Usage: "Show a ticket thread",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.SupportShow,
			},
			{
				Name:  "create",
				Usage: "Create a support ticket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Usage:    "Ticket subject",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category (bug_report, billing, feature_request, account, other)",
						Value: "other",
					},
					&cli.StringFlag{
						Name:  "priority",
						Usage: "Priority (low, medium, high, urgent)",
						Value: "medium",
					},
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Ticket message body",
						Required: true,
					},
				},
				Action: r.SupportCreate,
			},
			{
				Name:  "reply",
				Usage: "Reply to a ticket",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Reply body",
						Required: true,
					},
				},
				Action: r.SupportReply,
			},
			{
				Name:  "close",
				Usage: "Close a ticket",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SupportClose,
			},
		},
	}
}

// billingCommand handles subscription operations
func billingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "billing",
		Usage: "Subscription and billing operations",
		Commands: []*cli.Command{
			{
				Name:   "plans",
				Usage:  "List available plans",
				Flags:  jsonFlags(),
				Action: r.BillingPlans,
			},
			{
				Name:   "subscription",
				Usage:  "Show the current subscription",
				Flags:  jsonFlags(),
				Action: r.BillingSubscription,
			},
			{
				Name:  "checkout",
				Usage: "Open a checkout page for a plan",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "plan"},
				},
				Action: r.BillingCheckout,
			},
			{
				Name:   "cancel",
				Usage:  "Cancel the current subscription",
				Action: r.BillingCancel,
			},
			{
				Name:   "resume",
				Usage:  "Resume a cancelled subscription",
				Action: r.BillingResume,
			},
		},
	}
}

// dumpCommand fetches the full dashboard state in one pass
func dumpCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Full dashboard state dump (accounts, classes, schedulers, tickets, trends)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save dump to blossom_dump.json",
				Value: false,
			},
		},
		Action: r.Dump,
	}
}

// apiCommand handles direct API calls against the Blossom backend
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the Blossom backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "delete",
				Usage: "Direct DELETE",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.APIDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive dashboard.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive dashboard",
		Action:  r.TUI,
	}
}
