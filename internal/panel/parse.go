package panel

import (
	"strings"
	"unicode"
)

// ParseReply extracts the speaker, cleaned text and completion flag from raw
// model output. Output without a recognized marker falls back to the HR
// Manager with the trimmed text unchanged; parsing never fails.
func ParseReply(raw string) Reply {
	text := strings.TrimSpace(raw)
	speaker := SpeakerHRManager

	switch {
	case strings.HasPrefix(text, MarkerHRManager):
		speaker = SpeakerHRManager
		text = strings.TrimLeftFunc(text[len(MarkerHRManager):], unicode.IsSpace)
	case strings.HasPrefix(text, MarkerTechLead):
		speaker = SpeakerTechLead
		text = strings.TrimLeftFunc(text[len(MarkerTechLead):], unicode.IsSpace)
	}

	// The end token is matched anywhere in the text, not only at the end:
	// the model is told to place it last, but compliance is not guaranteed.
	finished := strings.Contains(text, EndToken)
	text = strings.TrimSpace(strings.ReplaceAll(text, EndToken, ""))

	return Reply{Speaker: speaker, Text: text, Finished: finished}
}
