package report

import (
	"strings"

	"github.com/bryan-cox/thingsexport/internal/model"
)

// The replacements are Cyrillic and Armenian look-alikes, not ASCII.
var lookAlikes = strings.NewReplacer(
	"a", "а",
	"e", "е",
	"i", "і",
	"o", "о",
	"u", "ս",
)

// MentionNames collects the names of @-prefixed tags across records, in
// first-seen order.
func MentionNames(records []model.Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range records {
		for _, tag := range r.Tags {
			name, ok := strings.CutPrefix(tag, "@")
			if !ok || name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// SanitizeMentions replaces every occurrence of each name in text with a
// visually identical string that chat tools will not treat as a mention.
func SanitizeMentions(text string, names []string) string {
	for _, name := range names {
		text = strings.ReplaceAll(text, name, lookAlikes.Replace(name))
	}
	return text
}
