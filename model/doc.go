// Package model defines the normalized single-exchange abstraction over LLM
// providers plus a mock implementation for tests. Provider adapters live in
// the anthropic and openai subpackages.
package model
