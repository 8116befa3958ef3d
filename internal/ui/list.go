package ui

import (
	"fmt"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = menuItem{}
	_ list.Item = classItem{}
	_ list.Item = postItem{}
	_ list.Item = hashtagItem{}
	_ list.Item = ticketItem{}
)

// menuItem is a top-level dashboard destination.
type menuItem struct {
	title string
	desc  string
	view  ViewState
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

// classItem wraps [models.HookClass] to implement [list.Item].
type classItem struct {
	class models.HookClass
}

func (i classItem) FilterValue() string { return i.class.Name }
func (i classItem) Title() string       { return i.class.Name }
func (i classItem) Description() string {
	desc := fmt.Sprintf("%d videos • %s avg views", i.class.VideoCount, shared.FormatCount(int64(i.class.AvgViews)))
	if i.class.Analysis != nil {
		desc += " • analyzed"
	}
	return desc
}

// postItem wraps [models.TrendingPost] to implement [list.Item].
type postItem struct {
	post models.TrendingPost
}

func (i postItem) FilterValue() string { return i.post.Author }
func (i postItem) Title() string {
	return fmt.Sprintf("@%s (%s)", i.post.Author, i.post.Platform)
}
func (i postItem) Description() string {
	return fmt.Sprintf("#%s • %s views • %s likes",
		i.post.Hashtag,
		shared.FormatCount(i.post.Views),
		shared.FormatCount(i.post.Likes))
}

// hashtagItem wraps [models.TrackedHashtag] to implement [list.Item].
type hashtagItem struct {
	hashtag models.TrackedHashtag
}

func (i hashtagItem) FilterValue() string { return i.hashtag.Tag }
func (i hashtagItem) Title() string       { return "#" + i.hashtag.Tag }
func (i hashtagItem) Description() string {
	state := "paused"
	if i.hashtag.Active {
		state = "active"
	}
	return fmt.Sprintf("%s posts • %s", shared.FormatCount(i.hashtag.PostCount), state)
}

// ticketItem wraps [models.Ticket] to implement [list.Item].
type ticketItem struct {
	ticket models.Ticket
}

func (i ticketItem) FilterValue() string { return i.ticket.Subject }
func (i ticketItem) Title() string       { return i.ticket.Subject }
func (i ticketItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.ticket.Category, i.ticket.Priority, i.ticket.Status)
}
