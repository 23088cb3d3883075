package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/nvoskov/teamplan/internal/models"
)

// detailState is the read-only task detail pane. The description and notes
// log are rendered as markdown.
type detailState struct {
	task     models.Task
	rendered string
}

func newDetailState(task models.Task) detailState {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", task.Title)
	fmt.Fprintf(&b, "**Status:** %s · **Priority:** %s\n\n", task.Status, task.Priority)
	if len(task.Assignees) > 0 {
		fmt.Fprintf(&b, "**Assigned:** %s\n\n", strings.Join(task.Assignees, ", "))
	}
	if task.Deadline != nil {
		fmt.Fprintf(&b, "**Deadline:** %s\n\n", *task.Deadline)
	}
	if task.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", task.Description)
	}
	if len(task.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range task.Notes {
			fmt.Fprintf(&b, "- %s · *%s, %s*\n", note.Text, note.Author, note.At.Format("Jan 2 15:04"))
		}
	}

	rendered, err := glamour.Render(b.String(), "dark")
	if err != nil {
		rendered = b.String()
	}
	return detailState{task: task, rendered: rendered}
}

func (d detailState) view() string {
	return d.rendered + "\n  esc to close"
}
