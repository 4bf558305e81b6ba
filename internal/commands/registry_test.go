package commands_test

import (
	"testing"

	"taskcli/internal/commands"
)

func TestRegistry_FindByNameAndAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.DoneCmd{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, name := range []string{"done", "toggle", "DONE"} {
		cmd, ok := r.Find(name)
		if !ok {
			t.Errorf("Find(%q): not found", name)
			continue
		}
		if cmd.Name() != "done" {
			t.Errorf("Find(%q) = %q, want done", name, cmd.Name())
		}
	}
	if _, ok := r.Find("rm"); ok {
		t.Error("rm should not be registered")
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.RmCmd{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(&commands.RmCmd{}); err == nil {
		t.Error("expected error registering rm twice")
	}
	if _, ok := r.Find("delete"); !ok {
		t.Error("alias delete should still resolve")
	}
}

func TestRegistry_AllIsSortedAndUnique(t *testing.T) {
	all := commands.DefaultRegistry.All()
	seen := make(map[string]bool)
	for i, cmd := range all {
		if seen[cmd.Name()] {
			t.Errorf("duplicate command %q", cmd.Name())
		}
		seen[cmd.Name()] = true
		if i > 0 && all[i-1].Name() >= cmd.Name() {
			t.Errorf("commands not sorted: %q before %q", all[i-1].Name(), cmd.Name())
		}
	}
	for _, name := range []string{"add", "done", "edit", "help", "list", "login", "logout", "rm", "show", "signup", "version", "whoami"} {
		if !seen[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}
