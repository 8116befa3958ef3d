package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blossomlabs/blossom-cli/internal/formatter"
	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/repositories"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// TrendsPosts lists trending posts with optional hashtag and platform filters.
func (r *Runner) TrendsPosts(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	opts := services.TrendOptions{
		Hashtag:  shared.NormalizeHashtag(cmd.String("hashtag")),
		Platform: cmd.String("platform"),
		Page:     cmd.Int("page"),
		PageSize: cmd.Int("page-size"),
	}

	r.logger.Info("listing trending posts", "hashtag", opts.Hashtag, "platform", opts.Platform)

	page, err := r.client.TrendingPosts(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.cachePosts(page.Items)

	if cmd.Bool("save") {
		saveFile := "trending_posts.csv"
		data, err := formatter.TrendsToCSV(page.Items)
		if err != nil {
			return fmt.Errorf("failed to render CSV: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save posts", "error", err)
		} else {
			r.logger.Info("posts saved", "file", saveFile)
			r.writePlain("✓ Saved to %s\n\n", saveFile)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d trending posts (page %d/%d):\n\n", page.Total, page.Page, page.PageOf().TotalPages())
	for i, post := range page.Items {
		r.writePlain("%d. @%s (%s)\n", i+1, post.Author, post.Platform)
		if post.Hashtag != "" {
			r.writePlain("   #%s\n", post.Hashtag)
		}
		r.writePlain("   Views: %s, Likes: %s, Comments: %s\n",
			shared.FormatCount(post.Views), shared.FormatCount(post.Likes), shared.FormatCount(post.Comments))
		if post.URL != "" {
			r.writePlain("   %s\n", post.URL)
		}
		r.writePlain("\n")
	}

	return nil
}

// TrendsHashtags lists trending hashtags.
func (r *Runner) TrendsHashtags(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	hashtags, err := r.client.TrendingHashtags(ctx, services.TrendOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(hashtags, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d trending hashtags:\n\n", len(hashtags))
	for i, tag := range hashtags {
		r.writePlain("%d. #%s (%s posts)\n", i+1, tag.Tag, shared.FormatCount(tag.PostCount))
	}

	return nil
}

// cachePosts writes fetched posts to the local render cache, best effort.
func (r *Runner) cachePosts(posts []models.TrendingPost) {
	db, err := r.database()
	if err != nil {
		r.logger.Debug("cache unavailable", "error", err)
		return
	}

	adapter := repositories.NewPostCacheAdapter(repositories.NewPostRepository(db))
	for _, post := range posts {
		if err := adapter.CachePost(post); err != nil {
			r.logger.Debug("failed to cache post", "post", post.ID, "error", err)
		}
	}
}
