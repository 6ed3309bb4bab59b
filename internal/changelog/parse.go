package changelog

import (
	"strconv"
	"strings"
)

// closingKeywords are the verb forms GitHub recognises for closing an issue
// from a pull request body. Each keyword keeps its trailing space so that
// e.g. "fixes#2" without a space does not match "fixes ".
var closingKeywords = []string{
	"close ",
	"closes ",
	"closed ",
	"fix ",
	"fixes ",
	"fixed ",
	"resolve ",
	"resolves ",
	"resolved ",
}

// ReferencedIssues extracts the issue numbers a pull request body claims to
// close, e.g. "Fixes #39". A number only counts when it directly follows a
// closing keyword, so "Not #3737 though" yields nothing. Numbers are
// deduplicated and returned in the order they appear in the body.
func ReferencedIssues(body string) []int {
	segments := strings.Split(body, "#")

	var numbers []int
	seen := make(map[int]bool)

	for i := 0; i < len(segments)-1; i++ {
		segment := strings.ToLower(segments[i])

		for _, keyword := range closingKeywords {
			if !strings.HasSuffix(segment, keyword) {
				continue
			}

			digits := leadingDigits(segments[i+1])
			if digits == "" {
				// The "#" was not followed by a number; another keyword
				// could still end this segment.
				continue
			}

			number, err := strconv.Atoi(digits)
			if err != nil {
				continue
			}

			if !seen[number] {
				seen[number] = true
				numbers = append(numbers, number)
			}
			break
		}
	}

	return numbers
}

// leadingDigits returns the run of ASCII digits at the start of s.
func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
