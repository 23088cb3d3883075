// Package command interprets free-text chat commands into task mutations.
// Intents are probed in a fixed order against the lower-cased text; the
// first matching rule wins, so specific patterns sit above catch-alls.
package command

import (
	"regexp"
	"strings"

	"github.com/nvoskov/teamplan/internal/models"
)

// Intent is one recognized category of chat command.
type Intent string

const (
	IntentStandup Intent = "standup"
	IntentNote    Intent = "note"
	IntentCreate  Intent = "create"
	IntentAssign  Intent = "assign"
	IntentMove    Intent = "move"
	IntentList    Intent = "list"
)

// rule pairs a probe with the router handler for its intent. The table is
// ordered: standup before list, note before assign, create before the
// generic verbs, list last as the catch-all.
type rule struct {
	intent Intent
	probe  *regexp.Regexp
}

var rules = []rule{
	{IntentStandup, regexp.MustCompile(`\bstandup\b|(?:yesterday|today|blockers):`)},
	{IntentNote, regexp.MustCompile(`\b(?:add note to|note on)\b`)},
	{IntentCreate, regexp.MustCompile(`\b(?:create|add|new)\s+task\b`)},
	{IntentAssign, regexp.MustCompile(`\bassign\b`)},
	{IntentMove, regexp.MustCompile(`\bmove\b|\bset\b.*\bstatus\b`)},
	{IntentList, regexp.MustCompile(`\b(?:show|list|what)\b`)},
}

// Classify returns the first matching intent for the lower-cased text, or
// false when nothing matches.
func Classify(text string) (Intent, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.probe.MatchString(lower) {
			return r.intent, true
		}
	}
	return "", false
}

// statusPhrases maps spoken status keywords, longest phrase first, so a
// short keyword never matches inside a longer one.
var statusPhrases = []struct {
	Phrase string
	Status models.TaskStatus
}{
	{"in progress", models.StatusInProgress},
	{"in review", models.StatusReview},
	{"backlog", models.StatusBacklog},
	{"review", models.StatusReview},
	{"to do", models.StatusTodo},
	{"todo", models.StatusTodo},
	{"done", models.StatusDone},
}

// matchStatus finds a status keyword in the text and returns the status
// plus the text with the phrase removed. Phrases match at word boundaries
// only; "to do" never matches inside "to done".
func matchStatus(lower string) (models.TaskStatus, string, bool) {
	for _, sp := range statusPhrases {
		if idx := indexWord(lower, sp.Phrase); idx >= 0 {
			rest := lower[:idx] + lower[idx+len(sp.Phrase):]
			return sp.Status, rest, true
		}
	}
	return "", lower, false
}

// priorityWords are matched as literal words anywhere in a create command.
var priorityWords = []models.Priority{
	models.PriorityUrgent,
	models.PriorityHigh,
	models.PriorityMedium,
	models.PriorityLow,
}

func matchPriority(lower string) (models.Priority, bool) {
	for _, p := range priorityWords {
		if containsWord(lower, string(p)) {
			return p, true
		}
	}
	return "", false
}

func containsWord(text, word string) bool {
	return indexWord(text, word) >= 0
}

// indexWord returns the index of the first occurrence of word (which may
// span several words) bounded by non-word characters, or -1.
func indexWord(text, word string) int {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return -1
		}
		i += idx
		before := i == 0 || !isWordChar(text[i-1])
		afterIdx := i + len(word)
		after := afterIdx == len(text) || !isWordChar(text[afterIdx])
		if before && after {
			return i
		}
		idx = i + len(word)
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
