package intent

import "strings"

// Parse classifies one line of raw input into a Command. It is deterministic
// and stateless: the same text always yields a structurally identical Command.
// Input is trimmed and matched case-insensitively. Absence of a match is a
// valid result, not a fault: the line comes back as KindUnknown carrying the
// trimmed text, and Parse never returns an error.
func Parse(text string) Command {
	trimmed := strings.TrimSpace(text)

	for _, r := range rules {
		if groups := r.Pattern.FindStringSubmatch(trimmed); groups != nil {
			return r.Build(groups)
		}
	}

	if isImplicitQuestion(trimmed) {
		return Command{Kind: KindQuery, Query: trimmed}
	}

	return Command{Kind: KindUnknown, Text: trimmed}
}

// isImplicitQuestion detects lines that read as questions without an explicit
// query prefix: an interrogative opening word, or a trailing question mark.
func isImplicitQuestion(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	first := strings.ToLower(strings.Fields(trimmed)[0])
	return interrogatives[first]
}

// IsDevelopmentCommand reports whether the text contains any word from the
// fixed development vocabulary. Callers use it to pick a framing for
// unclassified input; it plays no part in classification itself.
func IsDevelopmentCommand(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if developmentVocabulary[strings.Trim(word, `.,;:!?"'`)] {
			return true
		}
	}
	return false
}
