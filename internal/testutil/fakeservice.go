// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskcli/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("Task not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	tasks    []service.Task // backend order
	nextID   int
	token    string
	user     service.User
	password string

	// Error injection for testing
	SignupErr  error
	LoginErr   error
	LogoutErr  error
	ProfileErr error
	ListErr    error
	GetErr     error
	CreateErr  error
	UpdateErr  error
	ToggleErr  error
	DeleteErr  error

	// Calls records the operations performed, in order.
	Calls []string
}

// NewFakeService creates an empty, logged-in FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		token:    "fake-token",
		user:     service.User{ID: "u1", Name: "Test User", Email: "test@example.com"},
		password: "secret",
	}
}

// SetLoggedIn sets whether a session token is stored.
func (f *FakeService) SetLoggedIn(loggedIn bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if loggedIn {
		f.token = "fake-token"
	} else {
		f.token = ""
	}
}

// Token returns the stored session token, "" if logged out.
func (f *FakeService) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

// AddTask appends a task as if the backend already held it.
func (f *FakeService) AddTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// Tasks returns a copy of the stored tasks in backend order.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

func (f *FakeService) record(call string) {
	f.Calls = append(f.Calls, call)
}

// Signup implements service.Service.
func (f *FakeService) Signup(ctx context.Context, name, email, password string) (service.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("signup")
	if f.SignupErr != nil {
		return service.AuthResult{}, f.SignupErr
	}
	f.user = service.User{ID: "u2", Name: name, Email: email}
	f.password = password
	f.token = "signup-token"
	user := f.user
	return service.AuthResult{Token: f.token, User: &user}, nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("login")
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	if email != f.user.Email || password != f.password {
		return service.AuthResult{}, errors.New("Invalid credentials")
	}
	f.token = "login-token"
	user := f.user
	return service.AuthResult{Token: f.token, User: &user}, nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("logout")
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.token = ""
	return nil
}

// IsAuthenticated implements service.Service.
func (f *FakeService) IsAuthenticated(ctx context.Context) bool {
	return f.Token() != ""
}

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context) (service.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("profile")
	if f.ProfileErr != nil {
		return service.User{}, f.ProfileErr
	}
	return f.user, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *FakeService) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("get " + id)
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	return f.tasks[i], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.nextID++
	task := service.Task{
		ID:          fmt.Sprintf("new%d", f.nextID),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Completed:   in.Completed,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update " + id)
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.tasks[i].Title = in.Title
	f.tasks[i].Description = in.Description
	f.tasks[i].Priority = in.Priority
	f.tasks[i].DueDate = in.DueDate
	f.tasks[i].Completed = in.Completed
	return f.tasks[i], nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("toggle " + id)
	if f.ToggleErr != nil {
		return service.Task{}, f.ToggleErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.tasks[i].Completed = !f.tasks[i].Completed
	return f.tasks[i], nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete " + id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}
