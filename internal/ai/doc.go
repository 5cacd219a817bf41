// Package ai forwards starship questions to an OpenAI-compatible
// chat-completions API with a fixed expert system prompt.
package ai
