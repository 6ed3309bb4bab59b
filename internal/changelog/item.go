package changelog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Item pairs the thing a changelog line describes with the pull request that
// closed it. Input may be either variant; ClosedBy is always a pull request,
// except in the issues section of a sectioned changelog where an issue closes
// itself and no attribution is rendered.
type Item struct {
	Input    Entry
	ClosedBy Entry
}

// Title renders the changelog line for the item. The second return value is
// false when the input has no title, in which case the item is excluded from
// output.
func (item Item) Title() (string, bool) {
	if item.Input.Title == "" {
		return "", false
	}

	title := strings.TrimSpace(stripEmoji(capitalizeFirst(item.Input.Title)))
	if item.Input.HTMLURL != "" {
		title += fmt.Sprintf(" ([#%d](%s))", item.Input.Number, item.Input.HTMLURL)
	}
	if item.ClosedBy.Kind == KindPullRequest && item.ClosedBy.Username != "" {
		title += fmt.Sprintf(" via [@%s](https://github.com/%s)", item.ClosedBy.Username, item.ClosedBy.Username)
	}
	return title, true
}

// capitalizeFirst upper-cases the first letter of s.
func capitalizeFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}

// emoji covers the presentation characters stripped from titles: the main
// pictograph blocks plus the variation selector and zero-width joiner used in
// emoji sequences.
var emoji = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200d, Hi: 0x200d, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2b00, Hi: 0x2bff, Stride: 1},
		{Lo: 0xfe0f, Hi: 0xfe0f, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1f2ff, Stride: 1},
		{Lo: 0x1f300, Hi: 0x1f9ff, Stride: 1},
		{Lo: 0x1fa70, Hi: 0x1faff, Stride: 1},
	},
}

func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(emoji, r) {
			return -1
		}
		return r
	}, s)
}
