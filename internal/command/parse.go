package command

import (
	"regexp"
	"strings"

	"github.com/nvoskov/teamplan/internal/models"
)

// CreateArgs are the fields extractable from a create-task command.
type CreateArgs struct {
	Title    string
	Assignee string
	Priority models.Priority
	Deadline string
}

// titleStopWords end a trailing title phrase; the first occurrence wins.
var titleStopWords = []string{" for", " assign", " priority", " deadline", " client"}

var (
	quotedRe     = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	createLeadRe = regexp.MustCompile(`\b(?:create|add|new)\s+task\b:?\s*`)
	isoDateRe    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	noteRe       = regexp.MustCompile(`(?i)\b(?:add note to|note on)\s+([^:]+):\s*(.+)`)
)

// parseCreate extracts a title plus optional assignee, priority, and
// deadline. The title comes from a quoted substring when present, else the
// phrase after the create verb up to the first stop word.
func parseCreate(text string, memberKeys []string) CreateArgs {
	lower := strings.ToLower(text)
	var args CreateArgs

	if m := quotedRe.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			args.Title = m[1]
		} else {
			args.Title = m[2]
		}
	} else if loc := createLeadRe.FindStringIndex(lower); loc != nil {
		rest := text[loc[1]:]
		stop := len(rest)
		for _, w := range titleStopWords {
			if i := strings.Index(strings.ToLower(rest), w); i >= 0 && i < stop {
				stop = i
			}
		}
		args.Title = strings.TrimSpace(rest[:stop])
	}

	for _, key := range memberKeys {
		if strings.Contains(lower, strings.ToLower(key)) {
			args.Assignee = key
			break
		}
	}
	if p, ok := matchPriority(lower); ok {
		args.Priority = p
	}
	if m := isoDateRe.FindStringSubmatch(lower); m != nil {
		args.Deadline = m[1]
	}
	return args
}

// stripWords drops exact-match scaffolding tokens, leaving title words
// intact even when they contain a scaffold word as a substring ("theme"
// keeps its "the", "reset" keeps its "set").
func stripWords(text string, words ...string) string {
	drop := make(map[string]bool, len(words))
	for _, w := range words {
		drop[w] = true
	}
	var kept []string
	for _, field := range strings.Fields(text) {
		if !drop[field] {
			kept = append(kept, field)
		}
	}
	return strings.Join(kept, " ")
}

// assignScaffold strips command scaffolding from an assign command,
// leaving the fuzzy task reference. "to <word>" also captures the target
// member.
var assignToRe = regexp.MustCompile(`\bto\s+(\w+)\b`)

func parseAssign(text string) (taskRef, member string) {
	lower := strings.ToLower(text)
	if m := assignToRe.FindStringSubmatch(lower); m != nil {
		member = m[1]
		lower = assignToRe.ReplaceAllString(lower, " ")
	}
	return stripWords(lower, "assign", "the", "task"), member
}

// parseMove extracts the target status (longest phrase first) and the task
// reference from a move command.
func parseMove(text string) (taskRef string, status models.TaskStatus, ok bool) {
	lower := strings.ToLower(text)
	status, rest, ok := matchStatus(lower)
	if !ok {
		return "", "", false
	}
	return stripWords(rest, "move", "set", "status", "the", "task", "to", "into"), status, true
}

// parseNote splits "<add note to|note on> <ref>: <text>". The colon is the
// mandatory separator.
func parseNote(text string) (taskRef, note string, ok bool) {
	m := noteRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// standupSections are recognized in any order; each section's text runs
// until the next keyword or end of string.
var standupKeywords = []string{"yesterday:", "today:", "blockers:"}

func parseStandup(text string) (models.Standup, bool) {
	lower := strings.ToLower(text)
	type section struct {
		key string
		pos int
	}
	var found []section
	for _, kw := range standupKeywords {
		if i := strings.Index(lower, kw); i >= 0 {
			found = append(found, section{key: kw, pos: i})
		}
	}
	if len(found) == 0 {
		return models.Standup{}, false
	}
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			if found[j].pos < found[i].pos {
				found[i], found[j] = found[j], found[i]
			}
		}
	}

	var st models.Standup
	for i, sec := range found {
		start := sec.pos + len(sec.key)
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].pos
		}
		body := strings.TrimSpace(text[start:end])
		switch sec.key {
		case "yesterday:":
			st.Yesterday = body
		case "today:":
			st.Today = body
		case "blockers:":
			st.Blockers = body
		}
	}
	return st, true
}
