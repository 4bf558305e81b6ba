// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for backend operations.
// Commands only talk to the backend through this interface.
type Service interface {
	// Signup registers an account and stores the returned session token.
	Signup(ctx context.Context, name, email, password string) (AuthResult, error)

	// Login authenticates and stores the returned session token.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Logout removes the stored session token. It makes no request.
	Logout(ctx context.Context) error

	// IsAuthenticated reports whether a session token is stored.
	IsAuthenticated(ctx context.Context) bool

	// Profile returns the authenticated user.
	Profile(ctx context.Context) (User, error)

	// ListTasks returns all tasks in backend order (no client-side sorting).
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns the stored record.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces the editable fields of a task.
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	// ToggleTask flips the completed flag and returns the updated record.
	ToggleTask(ctx context.Context, id string) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
