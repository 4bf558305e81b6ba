// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"taskcli/internal/service"
)

// Format selects how records are printed.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (want text, json or yaml)", s)
	}
}

// DisplayDate is how due dates appear in text output.
const DisplayDate = "Jan 2, 2006"

var (
	highColor    = color.New(color.FgRed)
	mediumColor  = color.New(color.FgYellow)
	lowColor     = color.New(color.FgGreen)
	overdueColor = color.New(color.FgRed)
	doneColor    = color.New(color.Faint)
)

// PriorityLabel returns the colored label for p. Unset priorities render as Low.
func PriorityLabel(p service.Priority) string {
	p = p.Effective()
	switch p {
	case service.PriorityHigh:
		return highColor.Sprint(p.String())
	case service.PriorityMed:
		return mediumColor.Sprint(p.String())
	default:
		return lowColor.Sprint(p.String())
	}
}

// FormatTask formats one numbered line of the task list.
// Format: "{N:>4}  [x] {TITLE}  ({PRIORITY}[, due {DATE}])\n"
func FormatTask(w io.Writer, num int, task service.Task, now time.Time) {
	box := "[ ]"
	title := normalizeTitle(task.Title)
	if task.Completed {
		box = "[x]"
		title = doneColor.Sprint(title)
	}
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, box, title, taskMeta(task, now))
}

func taskMeta(task service.Task, now time.Time) string {
	meta := PriorityLabel(task.Priority)
	if task.HasDueDate() {
		due := "due " + task.DueDate.Format(DisplayDate)
		if task.Overdue(now) {
			due = overdueColor.Sprint(due + ", overdue")
		}
		meta += ", " + due
	}
	return meta
}

// FormatSummary prints the "N active, M completed" footer.
func FormatSummary(w io.Writer, tasks []service.Task) {
	var done int
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintf(w, "%d active, %d completed\n", len(tasks)-done, done)
}

// FormatTaskDetail prints all fields of one task.
func FormatTaskDetail(w io.Writer, task service.Task, now time.Time) {
	status := "active"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "ID:          %s\n", task.ID)
	fmt.Fprintf(w, "Title:       %s\n", normalizeTitle(task.Title))
	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(w, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(w, "Priority:    %s\n", PriorityLabel(task.Priority))
	if task.HasDueDate() {
		due := task.DueDate.Format(DisplayDate)
		if task.Overdue(now) {
			due = overdueColor.Sprint(due + " (overdue)")
		}
		fmt.Fprintf(w, "Due:         %s\n", due)
	}
	fmt.Fprintf(w, "Status:      %s\n", status)
}

// FormatProfile prints the authenticated user.
func FormatProfile(w io.Writer, user service.User) {
	fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, f Format, v interface{}) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not an encoding", f)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
