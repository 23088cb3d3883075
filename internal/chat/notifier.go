package chat

import (
	"context"
	"sync"
	"time"

	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/util"
)

// Notifier coalesces rapid repeated status-change notifications for one
// task into a single message sent after a trailing quiet period. Every
// intermediate change still persists; only the announcement is debounced.
type Notifier struct {
	poster Poster
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	latest  map[string]pendingMessage
}

type pendingMessage struct {
	channel  string
	text     string
	threadTS string
}

func NewNotifier(poster Poster) *Notifier {
	return &Notifier{
		poster:  poster,
		delay:   config.NotifyQuietDelay,
		pending: make(map[string]*time.Timer),
		latest:  make(map[string]pendingMessage),
	}
}

// Announce schedules a notification for a key (typically a task id). A new
// announcement for the same key before the quiet period elapses replaces
// the pending one and restarts the delay.
func (n *Notifier) Announce(key, channel, text, threadTS string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latest[key] = pendingMessage{channel: channel, text: text, threadTS: threadTS}
	if timer, ok := n.pending[key]; ok {
		timer.Stop()
	}
	n.pending[key] = time.AfterFunc(n.delay, func() { n.flush(key) })
}

func (n *Notifier) flush(key string) {
	n.mu.Lock()
	msg, ok := n.latest[key]
	delete(n.latest, key)
	delete(n.pending, key)
	n.mu.Unlock()
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	util.LogError("notify", n.poster.PostMessage(ctx, msg.channel, msg.text, msg.threadTS))
}

// Stop cancels every pending notification without sending.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for key, timer := range n.pending {
		timer.Stop()
		delete(n.pending, key)
		delete(n.latest, key)
	}
}
