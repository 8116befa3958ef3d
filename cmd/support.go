package main

import (
	"context"
	"fmt"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// SupportList lists the caller's support tickets, newest first.
func (r *Runner) SupportList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	tickets, err := r.client.Tickets(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tickets, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d tickets:\n\n", len(tickets))
	for i, ticket := range tickets {
		r.writePlain("%d. %s [%s]\n", i+1, ticket.Subject, ticket.Status)
		r.writePlain("   %s, %s priority\n", ticket.Category, ticket.Priority)
		r.writePlain("   ID: %s\n", ticket.ID)
		r.writePlain("\n")
	}

	return nil
}

// SupportShow displays a ticket thread.
func (r *Runner) SupportShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ticket id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	ticket, err := r.client.Ticket(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(ticket, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Ticket: %s", ticket.Subject))
	r.writePlain("Status: %s\n", ticket.Status)
	r.writePlain("Category: %s, Priority: %s\n", ticket.Category, ticket.Priority)
	r.writePlain("Opened: %s\n", ticket.CreatedAt)

	r.writePlainln("Messages:")
	for _, msg := range ticket.Messages {
		author := msg.Author
		if msg.FromStaff {
			author += " (staff)"
		}
		r.writePlain("%s at %s:\n%s\n\n", author, msg.CreatedAt, msg.Body)
	}

	return nil
}

// SupportCreate creates a support ticket after validating the form fields locally.
func (r *Runner) SupportCreate(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	in := models.NewTicketInput{
		Subject:  cmd.String("subject"),
		Category: cmd.String("category"),
		Priority: cmd.String("priority"),
		Message:  cmd.String("message"),
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	ticket, err := r.client.CreateTicket(ctx, in)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Info("ticket created", "id", ticket.ID)
	r.writePlain("✓ Ticket created: %s\n", ticket.Subject)
	r.writePlain("  Status: %s\n", ticket.Status)
	r.writePlain("  ID: %s\n", ticket.ID)
	return nil
}

// SupportReply appends a message to an open ticket.
func (r *Runner) SupportReply(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ticket id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	ticket, err := r.client.ReplyTicket(ctx, id, cmd.String("message"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Reply added to %s (%d messages)\n", ticket.Subject, len(ticket.Messages))
}

// SupportClose closes a ticket.
func (r *Runner) SupportClose(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ticket id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	ticket, err := r.client.CloseTicket(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Ticket %s closed\n", ticket.ID)
}
