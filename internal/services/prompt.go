package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInterviewerPrompt creates the prompt for the next interviewer turn
func (pb *PromptBuilder) BuildInterviewerPrompt(jobContext, historyText, latestMessage string) string {
	return fmt.Sprintf(`You are an expert technical interviewer.
Context: The candidate has applied for the following role: %s

Your goal is to conduct a professional interview.
1. Ask relevant technical and behavioral questions based on the role and their resume (if provided in context).
2. Ask only ONE question at a time.
3. Keep your responses concise and conversational (suitable for voice output).
4. If the candidate's answer is too brief, ask for elaboration.

Current Conversation History:
%s

User's latest response: %s

Respond with ONLY your next question or comment.`,
		jobContext, historyText, latestMessage)
}

// BuildFeedbackPrompt creates the prompt for the post-interview review
func (pb *PromptBuilder) BuildFeedbackPrompt(jobContext, transcript string) string {
	return fmt.Sprintf(`You are an expert interview coach. Review the following interview transcript and provide detailed feedback.

Context: %s

Transcript:
%s

Please provide:
1. A score out of 10.
2. Key strengths.
3. Areas for improvement.
4. Specific suggestions for better answers.

Format the output as Markdown.`,
		jobContext, transcript)
}
