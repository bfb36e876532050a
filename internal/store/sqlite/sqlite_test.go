package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *SQLiteStore, name, email string, isAdmin bool) *store.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), &store.User{
		FullName:     name,
		Email:        email,
		PasswordHash: "hash",
		IsAdmin:      isAdmin,
	})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return u
}

func TestSearchUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "Alice Kim", "alice@alumni.edu", false)
	seedUser(t, s, "Alex Chen", "alex@alumni.edu", false)
	seedUser(t, s, "Bob Singh", "bob@alumni.edu", false)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "search 'al'",
			query:    "Al",
			expected: []string{"Alex Chen", "Alice Kim"},
		},
		{
			name:     "search 'singh'",
			query:    "Singh",
			expected: []string{"Bob Singh"},
		},
		{
			name:     "search non-existent",
			query:    "zzz",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.SearchUsers(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchUsers failed: %v", err)
			}

			if len(results) != len(tt.expected) {
				t.Fatalf("expected %d results, got %d", len(tt.expected), len(results))
			}
			for i, u := range results {
				if u.FullName != tt.expected[i] {
					t.Errorf("expected %s at index %d, got %s", tt.expected[i], i, u.FullName)
				}
			}
		})
	}
}

func TestListNonAdminUserIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := seedUser(t, s, "Alice Kim", "alice@alumni.edu", false)
	seedUser(t, s, "Admin One", "admin@alumni.edu", true)
	u3 := seedUser(t, s, "Bob Singh", "bob@alumni.edu", false)

	ids, err := s.ListNonAdminUserIDs(ctx)
	if err != nil {
		t.Fatalf("ListNonAdminUserIDs failed: %v", err)
	}

	if len(ids) != 2 || ids[0] != u1.ID || ids[1] != u3.ID {
		t.Fatalf("expected [%d %d], got %v", u1.ID, u3.ID, ids)
	}
}

func TestCreateDirectConversationDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := seedUser(t, s, "Alice Kim", "alice@alumni.edu", false)
	u2 := seedUser(t, s, "Bob Singh", "bob@alumni.edu", false)

	key := "dm:1:2"
	first, err := s.CreateDirectConversation(ctx, key, u1.ID, u2.ID)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	second, err := s.CreateDirectConversation(ctx, key, u2.ID, u1.ID)
	if err != nil {
		t.Fatalf("create conversation again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same conversation, got %d and %d", first.ID, second.ID)
	}

	convs, err := s.ListConversations(ctx, u1.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}
}

func TestListMessagesPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := seedUser(t, s, "Alice Kim", "alice@alumni.edu", false)
	u2 := seedUser(t, s, "Bob Singh", "bob@alumni.edu", false)
	conv, err := s.CreateDirectConversation(ctx, "dm:1:2", u1.ID, u2.ID)
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	contents := []string{"one", "two", "three", "four", "five"}
	for _, body := range contents {
		msg := &store.Message{
			ConversationID: conv.ID,
			SenderID:       u1.ID,
			Content:        body,
			MessageType:    store.MessageTypeText,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("save message %q: %v", body, err)
		}
		if msg.ID == 0 {
			t.Fatalf("expected message id to be set")
		}
	}

	// Latest page, chronological order.
	page, err := s.ListMessages(ctx, conv.ID, 3, nil)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(page) != 3 || page[0].Content != "three" || page[2].Content != "five" {
		t.Fatalf("unexpected page: %+v", page)
	}

	// Older page before the first message of the previous page.
	before := page[0].ID
	older, err := s.ListMessages(ctx, conv.ID, 3, &before)
	if err != nil {
		t.Fatalf("list older messages: %v", err)
	}
	if len(older) != 2 || older[0].Content != "one" || older[1].Content != "two" {
		t.Fatalf("unexpected older page: %+v", older)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := seedUser(t, s, "Alice Kim", "alice@alumni.edu", false)
	u2 := seedUser(t, s, "Bob Singh", "bob@alumni.edu", false)

	n := &store.Notification{UserID: u1.ID, Message: "New job posted: X", Link: "/jobs/1"}
	if err := s.InsertNotification(ctx, n); err != nil {
		t.Fatalf("insert notification: %v", err)
	}
	if n.ID == 0 {
		t.Fatalf("expected notification id to be set")
	}

	list, err := s.ListNotifications(ctx, u1.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 1 || list[0].Message != "New job posted: X" {
		t.Fatalf("unexpected notifications: %+v", list)
	}

	// Deleting with the wrong owner fails and leaves the row.
	if err := s.DeleteNotification(ctx, n.ID, u2.ID); err == nil {
		t.Fatalf("expected delete by non-owner to fail")
	}
	if err := s.DeleteNotification(ctx, n.ID, u1.ID); err != nil {
		t.Fatalf("delete notification: %v", err)
	}

	list, err = s.ListNotifications(ctx, u1.ID)
	if err != nil {
		t.Fatalf("list notifications after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no notifications, got %+v", list)
	}
}

func TestJobsAndEventsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "Alice Kim", "alice@alumni.edu", false)

	for _, title := range []string{"Backend Engineer", "Data Analyst"} {
		if err := s.CreateJob(ctx, &store.Job{PostedBy: u.ID, Title: title, Company: "Acme"}); err != nil {
			t.Fatalf("create job %q: %v", title, err)
		}
	}

	jobs, err := s.ListJobs(ctx, 10)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Title != "Data Analyst" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}

	if err := s.CreateEvent(ctx, &store.Event{CreatedBy: u.ID, Title: "Homecoming", Date: "2026-10-01"}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	events, err := s.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Homecoming" {
		t.Fatalf("unexpected events: %+v", events)
	}
}
