package api

import (
	"context"

	"taskcli/internal/service"
)

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, "GET", "tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "GET", "tasks/{id}", map[string]string{"id": id}, nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "POST", "tasks", nil, in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "PUT", "tasks/{id}", map[string]string{"id": id}, in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// ToggleTask implements service.Service.
func (c *Client) ToggleTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "PATCH", "tasks/{id}/toggle", map[string]string{"id": id}, nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask implements service.Service. The confirmation body is discarded.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "tasks/{id}", map[string]string{"id": id}, nil, nil)
}
