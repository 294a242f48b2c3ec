package format

import "regexp"

var mdV1Specials = regexp.MustCompile("([_*`\\[])")

// EscapeMarkdown escapes legacy Telegram Markdown special characters
// so user-provided text can be embedded in Markdown messages.
func EscapeMarkdown(text string) string {
	return mdV1Specials.ReplaceAllString(text, `\$1`)
}
