package service

import "sort"

// SortTasks orders tasks in place for display:
// incomplete before completed, then more urgent priority first (unset counts
// as Low), then earlier due date first. Undated tasks follow dated ones in
// the same group. The sort is stable, so ties keep their backend order.
// Leaving undated tasks wherever they were among dated ones is not an order
// at all (it is not transitive), so they are placed last instead.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return taskLess(tasks[i], tasks[j])
	})
}

// SortedTasks returns a sorted copy of tasks.
func SortedTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	SortTasks(out)
	return out
}

func taskLess(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if pa, pb := a.Priority.Effective(), b.Priority.Effective(); pa != pb {
		return pa < pb
	}
	switch {
	case a.HasDueDate() && b.HasDueDate():
		return a.DueDate.Before(b.DueDate.Time)
	case a.HasDueDate():
		return true
	default:
		return false
	}
}
