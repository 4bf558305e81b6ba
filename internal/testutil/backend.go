package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"taskcli/internal/service"
)

// RecordedRequest is what Backend saw of one incoming request.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

type backendUser struct {
	service.User
	passwordHash []byte
}

type rejection struct {
	status int
	body   string
}

type ctxKey struct{}

// Backend is an in-memory implementation of the task REST API, for use
// behind httptest.NewServer. Tokens are HS256 JWTs whose subject is the user id.
type Backend struct {
	mu       sync.Mutex
	secret   []byte
	users    map[string]*backendUser // id -> user
	emails   map[string]string       // email -> id
	tasks    map[string]service.Task // id -> task
	owners   map[string]string       // task id -> user id
	order    []string                // task ids in creation order
	requests []RecordedRequest
	rejects  []rejection
	router   *mux.Router
}

// NewBackend creates an empty backend.
func NewBackend() *Backend {
	b := &Backend{
		secret: []byte(uuid.NewString()),
		users:  make(map[string]*backendUser),
		emails: make(map[string]string),
		tasks:  make(map[string]service.Task),
		owners: make(map[string]string),
	}

	r := mux.NewRouter()
	r.HandleFunc("/auth/signup", b.signup).Methods("POST")
	r.HandleFunc("/auth/login", b.login).Methods("POST")

	authed := r.NewRoute().Subrouter()
	authed.Use(b.requireAuth)
	authed.HandleFunc("/auth/profile", b.profile).Methods("GET")
	authed.HandleFunc("/tasks", b.listTasks).Methods("GET")
	authed.HandleFunc("/tasks", b.createTask).Methods("POST")
	authed.HandleFunc("/tasks/{id}", b.getTask).Methods("GET")
	authed.HandleFunc("/tasks/{id}", b.updateTask).Methods("PUT")
	authed.HandleFunc("/tasks/{id}", b.deleteTask).Methods("DELETE")
	authed.HandleFunc("/tasks/{id}/toggle", b.toggleTask).Methods("PATCH")

	b.router = r
	return b
}

// ServeHTTP implements http.Handler.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          string(body),
	})
	var rej *rejection
	if len(b.rejects) > 0 {
		rej = &b.rejects[0]
		b.rejects = b.rejects[1:]
	}
	b.mu.Unlock()

	if rej != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rej.status)
		w.Write([]byte(rej.body))
		return
	}
	b.router.ServeHTTP(w, r)
}

// RejectNext makes the next request fail with status and the literal body.
func (b *Backend) RejectNext(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejects = append(b.rejects, rejection{status: status, body: body})
}

// Requests returns every request seen so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent request.
func (b *Backend) LastRequest() RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}
	}
	return b.requests[len(b.requests)-1]
}

// AddUser registers a user directly and returns a valid token for it.
func (b *Backend) AddUser(name, email, password string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.addUserLocked(name, email, password)
	if err != nil {
		return "", err
	}
	return b.issueToken(u.ID)
}

func (b *Backend) addUserLocked(name, email, password string) (*backendUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	u := &backendUser{
		User:         service.User{ID: uuid.NewString(), Name: name, Email: strings.ToLower(email)},
		passwordHash: hash,
	}
	b.users[u.ID] = u
	b.emails[u.Email] = u.ID
	return u, nil
}

func (b *Backend) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
}

func (b *Backend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "No token, authorization denied"})
			return
		}
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return b.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is not valid"})
			return
		}

		b.mu.Lock()
		_, exists := b.users[claims.Subject]
		b.mu.Unlock()
		if !exists {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is not valid"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims.Subject)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (b *Backend) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Name, email and password are required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.emails[strings.ToLower(req.Email)]; taken {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User already exists"})
		return
	}
	u, err := b.addUserLocked(req.Name, req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
		return
	}
	token, err := b.issueToken(u.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
		return
	}
	writeJSON(w, http.StatusCreated, service.AuthResult{Token: token, User: &u.User})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.emails[strings.ToLower(req.Email)]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	u := b.users[id]
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	token, err := b.issueToken(u.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, service.AuthResult{Token: token, User: &u.User})
}

func (b *Backend) profile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.users[userID(r)].User)
}

func (b *Backend) listTasks(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	owner := userID(r)
	tasks := []service.Task{}
	for _, id := range b.order {
		if b.owners[id] == owner {
			tasks = append(tasks, b.tasks[id])
		}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ownedTask returns the task named in the route if it belongs to the caller.
// Callers hold b.mu.
func (b *Backend) ownedTask(r *http.Request) (service.Task, bool) {
	id := mux.Vars(r)["id"]
	task, ok := b.tasks[id]
	if !ok || b.owners[id] != userID(r) {
		return service.Task{}, false
	}
	return task, true
}

func decodeInput(r *http.Request) (service.TaskInput, string) {
	var in service.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, "Invalid request body"
	}
	if strings.TrimSpace(in.Title) == "" {
		return in, "Title is required"
	}
	return in, ""
}

func applyInput(task *service.Task, in service.TaskInput) {
	task.Title = in.Title
	task.Description = in.Description
	task.Priority = in.Priority
	task.DueDate = in.DueDate
	task.Completed = in.Completed
	now := time.Now().UTC()
	task.UpdatedAt = &now
}

func (b *Backend) createTask(w http.ResponseWriter, r *http.Request) {
	in, problem := decodeInput(r)
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": problem})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now().UTC()
	task := service.Task{ID: uuid.NewString(), CreatedAt: &now}
	applyInput(&task, in)
	b.tasks[task.ID] = task
	b.owners[task.ID] = userID(r)
	b.order = append(b.order, task.ID)
	writeJSON(w, http.StatusCreated, task)
}

func (b *Backend) getTask(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.ownedTask(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) updateTask(w http.ResponseWriter, r *http.Request) {
	in, problem := decodeInput(r)
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": problem})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.ownedTask(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	applyInput(&task, in)
	b.tasks[task.ID] = task
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) toggleTask(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.ownedTask(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	task.Completed = !task.Completed
	b.tasks[task.ID] = task
	writeJSON(w, http.StatusOK, task)
}

func (b *Backend) deleteTask(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.ownedTask(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	delete(b.tasks, task.ID)
	delete(b.owners, task.ID)
	for i, id := range b.order {
		if id == task.ID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
