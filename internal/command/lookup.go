package command

import (
	"strings"

	"github.com/nvoskov/teamplan/internal/models"
)

// FindTasksByTitle matches open tasks by case-insensitive substring against
// their titles. Queries shorter than two characters are treated as empty.
func FindTasksByTitle(tasks []models.Task, query string) []models.Task {
	query = strings.TrimSpace(strings.ToLower(query))
	if len(query) < 2 {
		return nil
	}
	var out []models.Task
	for _, t := range tasks {
		if !t.IsOpen() {
			continue
		}
		if strings.Contains(strings.ToLower(t.Title), query) {
			out = append(out, t)
		}
	}
	return out
}

// ResolveMember maps an identity to a team member: exact key match first,
// then display-name substring, then email. First hit wins.
func ResolveMember(people []models.Person, identity string) (models.Person, bool) {
	ident := strings.TrimSpace(strings.ToLower(identity))
	if ident == "" {
		return models.Person{}, false
	}
	for _, p := range people {
		if strings.ToLower(p.Key) == ident || p.SlackUserID == identity {
			return p, true
		}
	}
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.DisplayName), ident) {
			return p, true
		}
	}
	for _, p := range people {
		if strings.ToLower(p.Email) == ident {
			return p, true
		}
	}
	return models.Person{}, false
}

// MentionedMember finds the first member whose key appears as a substring
// of the text.
func MentionedMember(people []models.Person, text string) (models.Person, bool) {
	lower := strings.ToLower(text)
	for _, p := range people {
		if p.Key != "" && strings.Contains(lower, strings.ToLower(p.Key)) {
			return p, true
		}
	}
	return models.Person{}, false
}
