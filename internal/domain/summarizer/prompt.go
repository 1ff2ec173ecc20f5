package summarizer

import "fmt"

const promptTemplate = `You are a content summarizer specialized in creating %s summaries.
%s of approximately %d words.
Focus on the main ideas and key information.
Maintain a professional and objective tone.`

// ComposePrompt renders the system instruction for a style and target length.
func ComposePrompt(style Style, targetWordCount int) string {
	return fmt.Sprintf(promptTemplate, style, style.instruction(), targetWordCount)
}
