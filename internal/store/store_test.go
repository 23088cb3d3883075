package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nvoskov/teamplan/internal/models"
)

func setupTestStore(t *testing.T, ctx context.Context) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("store close failed: %v", err)
		}
	})
	return st
}

func TestGetMissingDocument(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	var out map[string]any
	err := st.Get(ctx, ColTasks, "nope", &out)
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	doc := map[string]any{"name": "Acme"}
	if err := st.Put(ctx, ColClients, "c1", doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	var out map[string]any
	if err := st.Get(ctx, ColClients, "c1", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out["name"] != "Acme" {
		t.Fatalf("got %v, want Acme", out["name"])
	}

	if err := st.Delete(ctx, ColClients, "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := st.Get(ctx, ColClients, "c1", &out); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting again is not an error.
	if err := st.Delete(ctx, ColClients, "c1"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestMergeOverlaysFields(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	if err := st.Put(ctx, ColProjects, "p1", map[string]any{"name": "Site", "clientId": "c1"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := st.Merge(ctx, ColProjects, "p1", map[string]any{"name": "Site v2"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	var out map[string]any
	if err := st.Get(ctx, ColProjects, "p1", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out["name"] != "Site v2" || out["clientId"] != "c1" {
		t.Fatalf("merge result wrong: %v", out)
	}
}

func TestQueryFilters(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	if _, err := st.CreateTask(ctx, TaskSeed{Title: "Design review", Assignees: []string{"anna"}, ClientID: "c1"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := st.CreateTask(ctx, TaskSeed{Title: "Deploy", Assignees: []string{"ben"}}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := st.TasksForAssignee(ctx, "anna")
	if err != nil {
		t.Fatalf("TasksForAssignee failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Design review" {
		t.Fatalf("assignee query wrong: %+v", tasks)
	}

	tasks, err = st.TasksForClient(ctx, "c1")
	if err != nil {
		t.Fatalf("TasksForClient failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Design review" {
		t.Fatalf("client query wrong: %+v", tasks)
	}
}

func TestSubscribeFiresOnMatchingWrite(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	var got []string
	unsubscribe := st.Subscribe(NewQuery(ColTasks), func(doc Document) {
		got = append(got, doc.ID)
	})

	task, err := st.CreateTask(ctx, TaskSeed{Title: "Watched"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if len(got) != 1 || got[0] != task.ID {
		t.Fatalf("subscriber saw %v, want [%s]", got, task.ID)
	}

	unsubscribe()
	if _, err := st.CreateTask(ctx, TaskSeed{Title: "Unwatched"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("subscriber fired after unsubscribe: %v", got)
	}
}

func TestTaskStatusClosureInvariant(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	task, err := st.CreateTask(ctx, TaskSeed{Title: "Ship it"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatalf("new task should have no completion timestamp")
	}

	task, err = st.SetTaskStatus(ctx, task.ID, models.StatusDone)
	if err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatalf("done task must carry a completion timestamp")
	}

	task, err = st.SetTaskStatus(ctx, task.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatalf("reopened task must not carry a completion timestamp")
	}
}

func TestSetHourlyRateAppendsHistory(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	client, err := st.CreateClient(ctx, "Acme", 100)
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	client, err = st.SetHourlyRate(ctx, client.ID, 120)
	if err != nil {
		t.Fatalf("SetHourlyRate failed: %v", err)
	}
	if client.HourlyRate != 120 {
		t.Fatalf("rate: got %v, want 120", client.HourlyRate)
	}
	if len(client.RateHistory) != 1 || client.RateHistory[0].Rate != 100 {
		t.Fatalf("history wrong: %+v", client.RateHistory)
	}

	client, err = st.SetHourlyRate(ctx, client.ID, 140)
	if err != nil {
		t.Fatalf("SetHourlyRate failed: %v", err)
	}
	if len(client.RateHistory) != 2 || client.RateHistory[1].Rate != 120 {
		t.Fatalf("history must be append-only: %+v", client.RateHistory)
	}
}

func TestSeedPeopleRoster(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	roster := "anna:Anna Kovacs:anna@example.com:U0ANNA, ben:Ben Ortiz, ,solo"
	if err := st.SeedPeople(ctx, roster); err != nil {
		t.Fatalf("SeedPeople failed: %v", err)
	}

	people, err := st.ListPeople(ctx)
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if len(people) != 3 {
		t.Fatalf("got %d people, want 3: %+v", len(people), people)
	}
	anna, err := st.GetPerson(ctx, "anna")
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if anna.DisplayName != "Anna Kovacs" || anna.SlackUserID != "U0ANNA" {
		t.Fatalf("anna wrong: %+v", anna)
	}
	ben, err := st.GetPerson(ctx, "ben")
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if ben.Email != "" || ben.DisplayName != "Ben Ortiz" {
		t.Fatalf("partial entry wrong: %+v", ben)
	}
}
