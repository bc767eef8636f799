// Package translation provides English <-> German translation through an
// OpenAI-compatible chat-completion API. The Translator owns the API key and
// the chat client built from it, and classifies every failure into one of the
// package's sentinel errors so callers can render user guidance.
package translation
