package domain

import "time"

// Letter is a generated sanction letter. Content is plain text; the file
// name embeds the generation timestamp, and Reference is derived from it.
// Generating a letter has no side effects on the session, so it may be
// downloaded any number of times.
type Letter struct {
	FileName    string    `json:"file_name"`
	Reference   string    `json:"reference"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}
