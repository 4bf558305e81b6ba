package commands

import (
	"context"
	"errors"
	"testing"

	"taskcli/internal/service"
	"taskcli/internal/testutil"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.ID != "" {
		t.Errorf("expected no ID, got %q", ref.ID)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"65a1f0c2e4b0a1b2c3d4e5f6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "65a1f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("unexpected ID %q", ref.ID)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {"  "}} {
		_, err := ParseTaskRef(args)
		if !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("ParseTaskRef(%q): expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestParseTaskRef_Zero(t *testing.T) {
	_, err := ParseTaskRef([]string{"0"})
	if !errors.Is(err, ErrTaskOutOfRange) {
		t.Fatalf("expected ErrTaskOutOfRange, got %v", err)
	}
	if err.Error() != "task number out of range: 0" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestParseTaskRef_Overflow(t *testing.T) {
	_, err := ParseTaskRef([]string{"99999999999999999999999"})
	if err == nil {
		t.Fatal("expected error for overflowing number")
	}
}

func TestResolveTaskID_UsesSortedOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "low", Title: "Low", Priority: service.PriorityLow})
	svc.AddTask(service.Task{ID: "done", Title: "Done", Priority: service.PriorityHigh, Completed: true})
	svc.AddTask(service.Task{ID: "high", Title: "High", Priority: service.PriorityHigh})

	ctx := context.Background()
	for num, want := range map[int]string{1: "high", 2: "low", 3: "done"} {
		id, err := ResolveTaskID(ctx, svc, TaskRef{Num: num})
		if err != nil {
			t.Fatalf("ResolveTaskID(%d): %v", num, err)
		}
		if id != want {
			t.Errorf("ResolveTaskID(%d) = %q, want %q", num, id, want)
		}
	}

	_, err := ResolveTaskID(ctx, svc, TaskRef{Num: 4})
	if !errors.Is(err, ErrTaskOutOfRange) {
		t.Errorf("expected ErrTaskOutOfRange, got %v", err)
	}
}

func TestResolveTaskID_LiteralIDSkipsBackend(t *testing.T) {
	svc := testutil.NewFakeService()

	id, err := ResolveTaskID(context.Background(), svc, TaskRef{ID: "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc" {
		t.Errorf("expected abc, got %q", id)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no backend calls, got %v", svc.Calls)
	}
}
