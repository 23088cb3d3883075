// Command bot runs the chat-command endpoint: it verifies inbound Slack
// events, routes their text through the command interpreter, and posts the
// reply back to the originating channel.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nvoskov/teamplan/internal/chat"
	"github.com/nvoskov/teamplan/internal/command"
	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/store"
	"github.com/nvoskov/teamplan/internal/util"
)

type eventEnvelope struct {
	Type      string     `json:"type"`
	Challenge string     `json:"challenge"`
	Event     innerEvent `json:"event"`
}

type innerEvent struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Channel  string `json:"channel"`
	User     string `json:"user"`
	ThreadTS string `json:"thread_ts"`
	BotID    string `json:"bot_id"`
}

type server struct {
	store         *store.Store
	router        *command.Router
	poster        chat.Poster
	notifier      *chat.Notifier
	signingSecret string
	announceChan  string
}

func main() {
	ctx := context.Background()

	dbPath := os.Getenv("TEAMPLAN_DB")
	if dbPath == "" {
		dbPath = filepath.Join(util.DataDir(config.AppName), config.DBFileName)
	}
	st, err := store.Open(ctx, dbPath)
	util.MustSucceed("open store", err)
	defer st.Close()

	if roster := os.Getenv("TEAMPLAN_TEAM"); roster != "" {
		util.MustSucceed("seed people", st.SeedPeople(ctx, roster))
	}

	poster := chat.NewClient(os.Getenv("SLACK_BOT_TOKEN"))
	srv := &server{
		store:         st,
		router:        command.NewRouter(st),
		poster:        poster,
		notifier:      chat.NewNotifier(poster),
		signingSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		announceChan:  os.Getenv("TEAMPLAN_ANNOUNCE_CHANNEL"),
	}
	defer srv.notifier.Stop()

	// Rapid status cycling on one task produces a single announcement
	// after the quiet period, though every write persisted.
	if srv.announceChan != "" {
		unsubscribe := st.Subscribe(store.NewQuery(store.ColTasks), func(doc store.Document) {
			var task models.Task
			if err := json.Unmarshal(doc.Body, &task); err != nil {
				return
			}
			text := fmt.Sprintf("%q is now %s", task.Title, task.Status)
			srv.notifier.Announce(task.ID, srv.announceChan, text, "")
		})
		defer unsubscribe()
	}

	addr := os.Getenv("TEAMPLAN_BOT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	http.HandleFunc("/slack/events", srv.handleEvents)
	util.MustSucceed("listen", http.ListenAndServe(addr, nil))
}

func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// A replayed or forged event must never reach the interpreter.
	if err := chat.VerifySignature(
		s.signingSecret,
		r.Header.Get("X-Slack-Request-Timestamp"),
		r.Header.Get("X-Slack-Signature"),
		body,
		time.Now(),
	); err != nil {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	if envelope.Type == "url_verification" {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, envelope.Challenge)
		return
	}

	ev := envelope.Event
	if ev.BotID != "" || ev.Text == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	sender := command.Sender{UserID: ev.User, Channel: ev.Channel, ThreadTS: ev.ThreadTS}
	reply, err := s.router.Route(ctx, ev.Text, sender)
	if err != nil {
		util.LogError("route command", err)
		reply = "Something went wrong on my side, please try again."
	}
	if reply != "" {
		util.LogError("post reply", s.poster.PostMessage(ctx, ev.Channel, reply, ev.ThreadTS))
	}
	w.WriteHeader(http.StatusOK)
}
