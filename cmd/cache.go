package main

import (
	"context"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/repositories"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheHooks lists locally cached hook classes without touching the backend.
func (r *Runner) CacheHooks(ctx context.Context, cmd *cli.Command) error {
	return r.cachedClasses(cmd, "hook")
}

// CacheFormats lists locally cached format classes without touching the backend.
func (r *Runner) CacheFormats(ctx context.Context, cmd *cli.Command) error {
	return r.cachedClasses(cmd, "format")
}

// cachedClasses renders the class cache for one kind. No session is required;
// the cache exists precisely for when the backend is unreachable.
func (r *Runner) cachedClasses(cmd *cli.Command, kind string) error {
	db, err := r.database()
	if err != nil {
		return fmt.Errorf("cache unavailable: %w", err)
	}

	repo := repositories.NewClassRepository(db)
	cached, err := repo.List(map[string]any{"kind": kind})
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if cmd.Bool("json") {
		classes := make([]models.HookClass, len(cached))
		for i, entry := range cached {
			classes[i] = entry.Class
		}
		return r.writeJSON(classes, cmd.Bool("pretty"))
	}

	r.writePlain("%d cached %s classes:\n\n", len(cached), kind)
	for i, entry := range cached {
		class := entry.Class
		r.writeClassRow(i+1, class.Name, class.Technique, class.AvgViews, class.VideoCount, class.ID, class.Analysis != nil)
		r.writePlain("   Fetched: %s ago\n", shared.Elapsed(entry.FetchedAt, time.Now()))
	}

	return nil
}

// CachePosts lists locally cached trending posts without touching the backend.
func (r *Runner) CachePosts(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return fmt.Errorf("cache unavailable: %w", err)
	}

	repo := repositories.NewPostRepository(db)
	criteria := map[string]any{}
	if hashtag := cmd.String("hashtag"); hashtag != "" {
		criteria["hashtag"] = shared.NormalizeHashtag(hashtag)
	}

	cached, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if cmd.Bool("json") {
		posts := make([]models.TrendingPost, len(cached))
		for i, entry := range cached {
			posts[i] = entry.Post
		}
		return r.writeJSON(posts, cmd.Bool("pretty"))
	}

	r.writePlain("%d cached trending posts:\n\n", len(cached))
	for i, entry := range cached {
		post := entry.Post
		r.writePlain("%d. @%s on %s (#%s)\n", i+1, post.Author, post.Platform, post.Hashtag)
		r.writePlain("   %s views, %s likes\n", shared.FormatCount(post.Views), shared.FormatCount(post.Likes))
		r.writePlain("   Fetched: %s ago\n", shared.Elapsed(entry.FetchedAt, time.Now()))
	}

	return nil
}

// cacheCommand inspects the local render cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached dashboard data",
		Commands: []*cli.Command{
			{
				Name:   "hooks",
				Usage:  "List cached hook classes",
				Flags:  jsonFlags(),
				Action: r.CacheHooks,
			},
			{
				Name:   "formats",
				Usage:  "List cached format classes",
				Flags:  jsonFlags(),
				Action: r.CacheFormats,
			},
			{
				Name:  "posts",
				Usage: "List cached trending posts",
				Flags: append(jsonFlags(),
					&cli.StringFlag{
						Name:  "hashtag",
						Usage: "Filter by hashtag",
					},
				),
				Action: r.CachePosts,
			},
		},
	}
}
