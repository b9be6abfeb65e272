// Package provider holds what every analysis gateway shares: the prompt
// contract and the connectivity probe.
package provider

import "fmt"

// DefaultMaxTokens bounds the length of one analysis completion.
const DefaultMaxTokens = 800

// PingPrompt and PingMaxTokens define the connectivity probe.
const (
	PingPrompt    = "Say just 'Hello world!'"
	PingMaxTokens = 50
)

// SystemPrompt returns the fixed analyst instruction sent as the system turn.
// An empty language asks the model to answer in the language of the entry.
func SystemPrompt(language string) string {
	answerIn := "the same language the entry is written in"
	if language != "" {
		answerIn = language
	}

	return fmt.Sprintf(`You are a professional psychologist specialising in cognitive behavioural therapy (CBT).
Analyse the following journal entry along these points:
1. Short summary (2-3 sentences)
2. Predominant emotion(s)
3. Detected cognitive distortions (if any)
4. One powerful reflective question for the writer
5. One concrete actionable recommendation for today

Answer exclusively in well-formatted plain text, in %s.`, answerIn)
}
