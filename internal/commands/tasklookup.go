package commands

import (
	"context"
	"fmt"

	"taskcli/internal/service"
)

// sortedTasks fetches all tasks in display order.
func sortedTasks(ctx context.Context, svc service.Service) ([]service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return service.SortedTasks(tasks), nil
}

// findTaskByNumber finds a task by its 1-based number in display order.
// The number matches what `list` printed, since both sort the same way.
func findTaskByNumber(ctx context.Context, svc service.Service, num int) (service.Task, error) {
	tasks, err := sortedTasks(ctx, svc)
	if err != nil {
		return service.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, num)
	}
	return tasks[num-1], nil
}
