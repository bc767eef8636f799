// Package credential persists the single OpenAI API key to a local JSON
// file. A missing or unreadable file is reported as an empty key.
package credential
