package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// fakeSupportBackend mimics the support area: tickets POSTed to it appear first in
// subsequent list responses with status "open".
type fakeSupportBackend struct {
	mu      sync.Mutex
	tickets []models.Ticket
}

func (f *fakeSupportBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/support/tickets", func(w http.ResponseWriter, r *http.Request) {
		var in models.NewTicketInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		ticket := models.Ticket{
			ID:       "tkt_" + in.Subject,
			Subject:  in.Subject,
			Category: in.Category,
			Priority: in.Priority,
			Status:   "open",
			Messages: []models.TicketMessage{{Body: in.Message}},
		}
		f.tickets = append([]models.Ticket{ticket}, f.tickets...)
		f.mu.Unlock()

		json.NewEncoder(w).Encode(ticket)
	})

	mux.HandleFunc("GET /api/support/tickets", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"tickets": f.tickets})
	})

	mux.HandleFunc("GET /api/support/tickets/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, tkt := range f.tickets {
			if tkt.ID == id {
				json.NewEncoder(w).Encode(tkt)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("POST /api/support/tickets/{id}/reply", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var in struct {
			Body string `json:"body"`
		}
		json.NewDecoder(r.Body).Decode(&in)

		f.mu.Lock()
		defer f.mu.Unlock()
		for i, tkt := range f.tickets {
			if tkt.ID == id {
				f.tickets[i].Messages = append(tkt.Messages, models.TicketMessage{Body: in.Body})
				w.WriteHeader(http.StatusCreated)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	return mux
}

func TestSupportTickets(t *testing.T) {
	backend := &fakeSupportBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, "tok", srv.Client())
	ctx := context.Background()

	t.Run("Create Then List", func(t *testing.T) {
		in := models.NewTicketInput{
			Subject:  "Login issue",
			Category: "bug_report",
			Priority: "high",
			Message:  "Cannot log in",
		}

		created, err := client.CreateTicket(ctx, in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Status != "open" {
			t.Errorf("expected new ticket status open, got %s", created.Status)
		}

		// Second ticket pushes the first down
		_, err = client.CreateTicket(ctx, models.NewTicketInput{
			Subject: "Billing question", Category: "billing", Priority: "low", Message: "Invoice?",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tickets, err := client.Tickets(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tickets) != 2 {
			t.Fatalf("expected 2 tickets, got %d", len(tickets))
		}
		if tickets[0].Subject != "Billing question" {
			t.Errorf("expected newest ticket first, got %s", tickets[0].Subject)
		}
		if tickets[1].Subject != "Login issue" {
			t.Errorf("expected older ticket second, got %s", tickets[1].Subject)
		}
	})

	t.Run("Invalid Input Rejected Locally", func(t *testing.T) {
		_, err := client.CreateTicket(ctx, models.NewTicketInput{Subject: "", Category: "bug_report", Priority: "high", Message: "x"})
		if err == nil {
			t.Error("expected validation error for blank subject")
		}
	})

	t.Run("Reply Re-Fetches Thread", func(t *testing.T) {
		ticket, err := client.ReplyTicket(ctx, "tkt_Login issue", "Tried resetting the password")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(ticket.Messages) != 2 {
			t.Errorf("expected re-fetched thread with 2 messages, got %d", len(ticket.Messages))
		}
	})

	t.Run("Blank Reply Rejected", func(t *testing.T) {
		if _, err := client.ReplyTicket(ctx, "tkt_Login issue", "   "); err == nil {
			t.Error("expected validation error for blank reply")
		}
	})
}
