// Package models lists the OpenAI chat models that can be used for
// translation with the configured API key.
package models
