package provider

import "fmt"

// Output token caps for the chat-completion provider. Translation and
// correction replies are capped at 100 tokens, rating replies at 10.
const (
	MaxTranslationTokens = 100
	MaxRatingTokens      = 10
)

// TranslationPrompt returns the system prompt for translating into the given
// target language.
func TranslationPrompt(language string) string {
	return fmt.Sprintf(
		"You are a translator. Translate the following text to %s, "+
			"do not correct the grammatical errors and do not write anything else "+
			"other than the provided text translated.",
		language,
	)
}

// CorrectionPrompt returns the system prompt for grammatically improving text
// in the given language before translation.
func CorrectionPrompt(language string) string {
	return fmt.Sprintf(
		"Correct and improve the following text in %s. "+
			"Do not add any comments, titles, or extra information. "+
			"Provide only the corrected and improved version of the original message.",
		language,
	)
}

// RatingPrompt returns the system prompt for scoring a translation 1-10.
func RatingPrompt() string {
	return "Rate the quality of the following translation on a scale of 1 to 10. " +
		"Provide only the rating number."
}
