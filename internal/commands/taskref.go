package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskcli/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in list order, 0 if ID is set
	ID  string // literal task id
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskOutOfRange indicates a task number past the end of the list.
var ErrTaskOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args or a blank first arg → error: task reference required
// 2. All digits → position in the sorted list, must be at least 1
// 3. Anything else → literal task id
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		if num < 1 {
			return TaskRef{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, num)
		}
		return TaskRef{Num: num}, nil
	}

	return TaskRef{ID: ref}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskID returns the task id a reference points at.
// Numbers are resolved against the sorted task list; ids are returned as is.
func ResolveTaskID(ctx context.Context, svc service.Service, ref TaskRef) (string, error) {
	if ref.ID != "" {
		return ref.ID, nil
	}
	task, err := findTaskByNumber(ctx, svc, ref.Num)
	if err != nil {
		return "", err
	}
	return task.ID, nil
}

// ResolveTask fetches the task a reference points at.
func ResolveTask(ctx context.Context, svc service.Service, ref TaskRef) (service.Task, error) {
	id, err := ResolveTaskID(ctx, svc, ref)
	if err != nil {
		return service.Task{}, err
	}
	return svc.GetTask(ctx, id)
}
