package store

import (
	"context"
	"time"
)

// User represents an alumni platform account.
type User struct {
	ID             int64
	FullName       string
	Email          string
	PasswordHash   string
	IsAdmin        bool
	University     string
	GraduationYear int64
	CreatedAt      time.Time
}

// Conversation is a direct 1:1 message thread between two users.
type Conversation struct {
	ID        int64
	DirectKey string // "dm:{minUserID}:{maxUserID}"
	User1ID   int64
	User2ID   int64
	CreatedAt time.Time
}

// MessageType distinguishes message payloads.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// Message represents a persisted chat message.
type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	Content        string
	MessageType    MessageType
	CreatedAt      time.Time
}

// Notification represents a persisted per-user notification row.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	Link      string
	CreatedAt time.Time
}

// Job represents a job posting broadcast to all alumni.
type Job struct {
	ID          int64
	PostedBy    int64
	Title       string
	Company     string
	Location    string
	Description string
	CreatedAt   time.Time
}

// Event represents an alumni event posting.
type Event struct {
	ID          int64
	CreatedBy   int64
	Title       string
	Location    string
	Date        string
	Description string
	CreatedAt   time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with hashed password.
	CreateUser(ctx context.Context, u *User) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// SearchUsers searches for users by full name.
	SearchUsers(ctx context.Context, query string) ([]*User, error)

	// ListNonAdminUserIDs lists ids of every non-administrator user.
	// Used to decide who is eligible for a global notification.
	ListNonAdminUserIDs(ctx context.Context) ([]int64, error)
}

// ConversationStore handles conversation persistence.
type ConversationStore interface {
	// CreateDirectConversation creates a direct conversation between two users.
	// Handles deduplication via directKey: an existing conversation is returned as-is.
	CreateDirectConversation(ctx context.Context, directKey string, user1ID, user2ID int64) (*Conversation, error)

	// GetConversationByID retrieves a conversation by ID.
	GetConversationByID(ctx context.Context, id int64) (*Conversation, error)

	// GetConversationByDirectKey retrieves a conversation by its direct_key.
	GetConversationByDirectKey(ctx context.Context, directKey string) (*Conversation, error)

	// ListConversations lists conversations the user participates in.
	ListConversations(ctx context.Context, userID int64) ([]*Conversation, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage persists a message to storage.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages retrieves messages from a conversation with pagination.
	// If beforeID is provided, returns messages older than that ID.
	// Limit determines max number of messages to return.
	ListMessages(ctx context.Context, conversationID int64, limit int, beforeID *int64) ([]*Message, error)
}

// NotificationStore handles notification persistence.
type NotificationStore interface {
	// InsertNotification inserts a single notification row.
	InsertNotification(ctx context.Context, n *Notification) error

	// ListNotifications lists notifications for a user, newest first.
	ListNotifications(ctx context.Context, userID int64) ([]*Notification, error)

	// DeleteNotification deletes a notification owned by the given user.
	DeleteNotification(ctx context.Context, id, userID int64) error
}

// JobStore handles job posting persistence.
type JobStore interface {
	// CreateJob persists a job posting.
	CreateJob(ctx context.Context, job *Job) error

	// ListJobs lists job postings, newest first.
	ListJobs(ctx context.Context, limit int) ([]*Job, error)
}

// EventStore handles event posting persistence.
type EventStore interface {
	// CreateEvent persists an event posting.
	CreateEvent(ctx context.Context, ev *Event) error

	// ListEvents lists event postings, newest first.
	ListEvents(ctx context.Context, limit int) ([]*Event, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	ConversationStore
	MessageStore
	NotificationStore
	JobStore
	EventStore

	// Close closes the underlying database connection.
	Close() error
}
