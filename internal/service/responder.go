package service

import (
	"strings"
	"unicode"
)

// Fixed assistant replies. These strings are an external contract and must
// not change.
const (
	replyGreeting  = "Hello! How can I assist you today?"
	replyHelp      = "I'm here to help! What do you need assistance with?"
	replyQuestion  = "That's an interesting question. Let me think about that..."
	replyGratitude = "You're welcome! Is there anything else I can help with?"
	replyGeneric   = "I understand. Can you tell me more about that?"
)

// AssistantReply classifies user text into a canned assistant reply.
// Deterministic and total: rules are checked in a fixed order, first match
// wins, and the fallback guarantees a non-empty reply. Keywords match whole
// words, case-insensitively, so "this" does not read as a greeting.
func AssistantReply(text string) string {
	words := tokenize(strings.ToLower(text))
	switch {
	case hasAny(words, "hello", "hi", "hey"):
		return replyGreeting
	case hasAny(words, "help", "support"):
		return replyHelp
	case strings.Contains(text, "?"):
		return replyQuestion
	case hasAny(words, "thank", "thanks"):
		return replyGratitude
	default:
		return replyGeneric
	}
}

func tokenize(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

func hasAny(words map[string]struct{}, keywords ...string) bool {
	for _, k := range keywords {
		if _, ok := words[k]; ok {
			return true
		}
	}
	return false
}
