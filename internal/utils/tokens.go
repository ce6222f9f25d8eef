package utils

// Token estimates use the 1 token ~= 4 characters heuristic. They only feed
// context-window warnings, never request limits.

// CountTokens estimates the number of tokens in the given text.
func CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len([]rune(text)) / 4
	if tokens == 0 {
		return 1
	}
	return tokens
}
