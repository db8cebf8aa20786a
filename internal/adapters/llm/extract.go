package llm

import (
	"regexp"
	"strings"
)

var jsonFence = regexp.MustCompile("(?s)```json(.*?)```")

// ExtractJSON returns the trimmed interior of the first ```json fence in
// text, or the whole trimmed text when there is no fence.
func ExtractJSON(text string) string {
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
