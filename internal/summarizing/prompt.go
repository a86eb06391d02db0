package summarizing

import (
	"encoding/json"
	"strings"
)

// Length is the requested verbosity of a summary. Any value other than
// LengthShort and LengthLong is treated as LengthMedium.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// UnmarshalJSON accepts any JSON value; non-strings (null, numbers, objects)
// decode to the empty length and therefore select the medium clause.
func (l *Length) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = ""
		return nil
	}
	*l = Length(s)
	return nil
}

const instruction = "Summarize this research paper in bullet points focusing on key contributions, " +
	"methodology, and results. Use academic language. "

const textLeadIn = "\n\nHere's the text:\n\n"

// LengthClause returns the sentence that sets the number of bullets.
func LengthClause(length Length) string {
	switch length {
	case LengthShort:
		return "Make the summary concise (3-4 bullets)."
	case LengthLong:
		return "Make the summary detailed and comprehensive (10+ bullets)."
	default:
		return "Keep the summary medium in length (5-7 bullets)."
	}
}

// BuildPrompt assembles the instruction, the length clause and the full text.
// The text is forwarded whole; nothing is truncated or chunked.
func BuildPrompt(text string, length Length) string {
	var sb strings.Builder
	sb.Grow(len(instruction) + len(textLeadIn) + len(text) + 64)
	sb.WriteString(instruction)
	sb.WriteString(LengthClause(length))
	sb.WriteString(textLeadIn)
	sb.WriteString(text)
	return sb.String()
}
