package resolver

import "google.golang.org/genai"

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is one text fragment of a history entry.
type Part struct {
	Text string `json:"text"`
}

// Entry is one turn of the conversation as kept by the browser.
type Entry struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Truncate returns a copy of the most recent n entries in chronological order.
func Truncate(history []Entry, n int) []Entry {
	if n <= 0 || len(history) == 0 {
		return []Entry{}
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	result := make([]Entry, len(history))
	copy(result, history)
	return result
}

func contents(history []Entry, command string) []*genai.Content {
	result := make([]*genai.Content, 0, len(history)+1)
	for _, entry := range history {
		role := entry.Role
		if role != RoleModel {
			role = RoleUser
		}
		parts := make([]*genai.Part, 0, len(entry.Parts))
		for _, part := range entry.Parts {
			parts = append(parts, &genai.Part{Text: part.Text})
		}
		if len(parts) == 0 {
			continue
		}
		result = append(result, &genai.Content{Role: role, Parts: parts})
	}
	return append(result, &genai.Content{Role: RoleUser, Parts: []*genai.Part{{Text: command}}})
}
