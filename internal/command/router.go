package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/store"
)

// Sender is the context of an inbound chat event. Signature and timestamp
// verification happened before this point; a forged event never reaches
// the router.
type Sender struct {
	UserID   string
	Channel  string
	ThreadTS string
}

// Router executes interpreted commands against the store. Replies are
// user-facing strings; only genuine I/O failures come back as errors.
type Router struct {
	Store *store.Store
}

func NewRouter(st *store.Store) *Router {
	return &Router{Store: st}
}

// Route interprets and executes one command, returning the reply text.
func (r *Router) Route(ctx context.Context, text string, sender Sender) (string, error) {
	intent, ok := Classify(text)
	if !ok {
		return "Sorry, I didn't understand that. Try \"create task ...\", \"assign ...\", \"move ...\", \"add note to ...\", \"standup ...\" or \"show my tasks\".", nil
	}
	switch intent {
	case IntentStandup:
		return r.routeStandup(ctx, text, sender)
	case IntentNote:
		return r.routeNote(ctx, text, sender)
	case IntentCreate:
		return r.routeCreate(ctx, text)
	case IntentAssign:
		return r.routeAssign(ctx, text)
	case IntentMove:
		return r.routeMove(ctx, text)
	case IntentList:
		return r.routeList(ctx, text, sender)
	}
	return "", fmt.Errorf("unhandled intent %q", intent)
}

func (r *Router) routeCreate(ctx context.Context, text string) (string, error) {
	people, err := r.Store.ListPeople(ctx)
	if err != nil {
		return "", err
	}
	keys := make([]string, 0, len(people))
	for _, p := range people {
		keys = append(keys, p.Key)
	}
	args := parseCreate(text, keys)
	if args.Title == "" {
		return "I need a task title. Try: create task \"Fix the header\" for anna", nil
	}
	seed := store.TaskSeed{Title: args.Title, Priority: args.Priority}
	if args.Assignee != "" {
		seed.Assignees = []string{args.Assignee}
	}
	if args.Deadline != "" {
		deadline := args.Deadline
		seed.Deadline = &deadline
	}
	task, err := r.Store.CreateTask(ctx, seed)
	if err != nil {
		return "", err
	}
	reply := fmt.Sprintf("Created task: %s", task.Title)
	if args.Assignee != "" {
		reply += fmt.Sprintf(" (assigned to %s)", args.Assignee)
	}
	return reply, nil
}

func (r *Router) routeAssign(ctx context.Context, text string) (string, error) {
	taskRef, memberRef := parseAssign(text)
	people, err := r.Store.ListPeople(ctx)
	if err != nil {
		return "", err
	}
	member, ok := ResolveMember(people, memberRef)
	if !ok {
		return fmt.Sprintf("Couldn't find a team member matching %q.", memberRef), nil
	}
	// The member key may remain in the stripped remainder; drop it before
	// the title lookup.
	taskRef = stripWords(taskRef, strings.ToLower(member.Key))

	task, reply, err := r.resolveTask(ctx, taskRef)
	if err != nil || reply != "" {
		return reply, err
	}
	if _, err := r.Store.AssignTask(ctx, task.ID, member.Key); err != nil {
		return "", err
	}
	return fmt.Sprintf("Assigned %q to %s.", task.Title, member.DisplayName), nil
}

func (r *Router) routeMove(ctx context.Context, text string) (string, error) {
	taskRef, status, ok := parseMove(text)
	if !ok {
		return "Which status? Try: move <task> to in progress", nil
	}
	task, reply, err := r.resolveTask(ctx, taskRef)
	if err != nil || reply != "" {
		return reply, err
	}
	if _, err := r.Store.SetTaskStatus(ctx, task.ID, status); err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved %q to %s.", task.Title, status), nil
}

func (r *Router) routeNote(ctx context.Context, text string, sender Sender) (string, error) {
	taskRef, note, ok := parseNote(text)
	if !ok {
		return "Notes need a colon: add note to <task>: <note text>", nil
	}
	task, reply, err := r.resolveTask(ctx, taskRef)
	if err != nil || reply != "" {
		return reply, err
	}
	people, err := r.Store.ListPeople(ctx)
	if err != nil {
		return "", err
	}
	author := sender.UserID
	if member, ok := ResolveMember(people, sender.UserID); ok {
		author = member.Key
	}
	if _, err := r.Store.AddTaskNote(ctx, task.ID, note, author); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added note to %q.", task.Title), nil
}

func (r *Router) routeStandup(ctx context.Context, text string, sender Sender) (string, error) {
	standup, ok := parseStandup(text)
	if !ok {
		return "A standup needs at least one of yesterday:, today:, blockers:", nil
	}
	people, err := r.Store.ListPeople(ctx)
	if err != nil {
		return "", err
	}
	userID := sender.UserID
	if member, ok := ResolveMember(people, sender.UserID); ok {
		userID = member.Key
	}
	standup.UserID = userID
	standup.Date = time.Now().Format("2006-01-02")
	if err := r.Store.PutStandup(ctx, standup); err != nil {
		return "", err
	}
	return "Standup recorded. Thanks!", nil
}

func (r *Router) routeList(ctx context.Context, text string, sender Sender) (string, error) {
	people, err := r.Store.ListPeople(ctx)
	if err != nil {
		return "", err
	}

	var member models.Person
	var ok bool
	if strings.Contains(strings.ToLower(text), "my task") {
		member, ok = ResolveMember(people, sender.UserID)
		if !ok {
			return "I don't know who you are yet. Ask an admin to add you to the team directory.", nil
		}
	} else {
		member, ok = MentionedMember(people, text)
		if !ok {
			return "Whose tasks? Try \"show my tasks\" or \"show anna's tasks\".", nil
		}
	}

	tasks, err := r.Store.TasksForAssignee(ctx, member.Key)
	if err != nil {
		return "", err
	}
	var open []models.Task
	for _, t := range tasks {
		if t.IsOpen() {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return fmt.Sprintf("%s has no open tasks.", member.DisplayName), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Open tasks for %s:\n", member.DisplayName)
	for _, t := range open {
		fmt.Fprintf(&b, "• %s [%s]\n", t.Title, t.Status)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// resolveTask runs the shared fuzzy lookup. A non-empty reply means the
// lookup ended in a user-facing message (none found, or a disambiguation
// list of the first few matches).
func (r *Router) resolveTask(ctx context.Context, taskRef string) (models.Task, string, error) {
	tasks, err := r.Store.ListTasks(ctx)
	if err != nil {
		return models.Task{}, "", err
	}
	matches := FindTasksByTitle(tasks, taskRef)
	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Sprintf("Couldn't find a task matching %q.", taskRef), nil
	case 1:
		return matches[0], "", nil
	}
	var b strings.Builder
	b.WriteString("Which one did you mean?\n")
	for i, t := range matches {
		if i == config.DisambiguateLimit {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Title)
	}
	return models.Task{}, strings.TrimRight(b.String(), "\n"), nil
}
