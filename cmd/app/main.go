package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nvoskov/teamplan/internal/calendar"
	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/store"
	"github.com/nvoskov/teamplan/internal/tui"
	"github.com/nvoskov/teamplan/internal/util"
	"golang.org/x/term"
)

func main() {
	ctx := context.Background()

	dataRoot := util.DataDir(config.AppName)
	_ = os.MkdirAll(dataRoot, 0o755)
	dbPath := filepath.Join(dataRoot, config.DBFileName)

	st, err := store.Open(ctx, dbPath)
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	viewer := strings.TrimSpace(os.Getenv("TEAMPLAN_USER"))
	if viewer == "" {
		viewer = "me"
	}
	if roster := strings.TrimSpace(os.Getenv("TEAMPLAN_TEAM")); roster != "" {
		util.LogError("seed people", st.SeedPeople(ctx, roster))
	}

	cal := setupCalendar(dataRoot)

	model := tui.NewMainModel(st, cal, viewer)
	p := tea.NewProgram(model, tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

// setupCalendar wires the calendar client when configured. The access
// token comes from the environment or from the encrypted token cache,
// unlocked with a prompted passphrase. Returns nil when no calendar is
// configured; the planner then simply shows no events.
func setupCalendar(dataRoot string) calendar.Service {
	baseURL := strings.TrimSpace(os.Getenv("TEAMPLAN_CALENDAR_URL"))
	if baseURL == "" {
		return nil
	}
	client := calendar.NewClient(baseURL)

	if token := strings.TrimSpace(os.Getenv("TEAMPLAN_CALENDAR_TOKEN")); token != "" {
		client.SetToken(token)
		return client
	}

	cachePath := filepath.Join(dataRoot, "calendar_token.enc")
	if _, err := os.Stat(cachePath); err != nil {
		return client
	}
	pass, err := promptForKey("Calendar token passphrase: ")
	if err != nil || pass == "" {
		return client
	}
	token, err := calendar.LoadToken(cachePath, pass)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not unlock calendar token: %v\n", err)
		return client
	}
	client.SetToken(token)
	return client
}

func promptForKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pass)), err
}
