package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is a task urgency level. Smaller numbers are more urgent.
type Priority int

const (
	// PriorityUnset is what the backend sends when a task has no priority.
	PriorityUnset Priority = 0
	PriorityHigh  Priority = 1
	PriorityMed   Priority = 2
	PriorityLow   Priority = 3

	// DefaultPriority is applied client-side to new tasks.
	DefaultPriority = PriorityLow
)

// String returns the display label.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMed:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return ""
	}
}

// Effective returns p, or DefaultPriority when p is unset or out of range.
func (p Priority) Effective() Priority {
	if p < PriorityHigh || p > PriorityLow {
		return DefaultPriority
	}
	return p
}

// ParsePriority accepts high|medium|low (any case, "med" too) or 1|2|3.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMed, nil
	case "low", "l":
		return PriorityLow, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(PriorityHigh) || n > int(PriorityLow) {
		return PriorityUnset, fmt.Errorf("invalid priority: %s", s)
	}
	return Priority(n), nil
}

// DateLayout is the date-only form accepted on input.
const DateLayout = "2006-01-02"

// Date is a calendar date. On the wire it is written as RFC 3339 (UTC
// midnight) and read from either RFC 3339 or YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the date of t in UTC, time of day dropped.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", s)
	}
	return Date{t.UTC()}, nil
}

// String returns YYYY-MM-DD.
func (d Date) String() string {
	return d.UTC().Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler. null and "" leave d zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dueDate: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the date as YYYY-MM-DD.
func (d Date) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Task is a task record as returned by the backend.
type Task struct {
	ID          string     `json:"_id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate     *Date      `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// Overdue reports whether an incomplete task's due date is before today.
func (t Task) Overdue(now time.Time) bool {
	if t.Completed || !t.HasDueDate() {
		return false
	}
	return t.DueDate.Before(NewDate(now).Time)
}

// Input returns the editable fields of t.
func (t Task) Input() TaskInput {
	in := TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority.Effective(),
		Completed:   t.Completed,
	}
	if t.HasDueDate() {
		d := *t.DueDate
		in.DueDate = &d
	}
	return in
}

// TaskInput is the body of create and update requests.
// A nil DueDate is sent as null. Completed is always sent; new tasks start
// incomplete and an update must echo the stored value.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     *Date    `json:"dueDate"`
	Completed   bool     `json:"completed"`
}

// Validate checks the fields the backend requires and defaults the rest.
func (in *TaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("title required")
	}
	in.Priority = in.Priority.Effective()
	return nil
}

// User is the authenticated account.
type User struct {
	ID    string `json:"_id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// AuthResult is the body returned by signup and login.
type AuthResult struct {
	Token string `json:"token" yaml:"-"`
	User  *User  `json:"user,omitempty" yaml:"user,omitempty"`
}
