// Package studyguide contains the pure business logic for discussion
// materials. This file holds the generation prompts.
package studyguide

import "strings"

// prompts are the per-section generation instructions. {passage} is
// replaced with the passage reference before sending.
var prompts = map[QuestionType]string{
	TypeApplication: `Generate 2-3 thought-provoking application questions for a Bible study on {passage}.
Focus on how the passage applies to modern life and personal faith journey.
Start each question with an appropriate emoji and ensure they're engaging and practical.
Format as a JSON array of strings.

Example format:
[
  "🔍 What practical steps can we take from {passage} to improve our daily walk with God?",
  "💡 How might applying {passage} change your approach to [specific situation] this week?"
]`,

	TypeDiscussion: `Generate 3-4 open-ended discussion questions for a Bible study on {passage}.
These should encourage group discussion and different perspectives.
Start each question with an appropriate emoji and make them thought-provoking.
Format as a JSON array of strings.

Example format:
[
  "🤔 What stands out to you most in {passage} and why?",
  "💭 How might someone with a different background interpret this passage?"
]`,

	TypeReflection: `Create 1-2 deep reflection questions about {passage}.
These should help individuals connect the passage to their personal spiritual growth.
Start each with a meaningful emoji and make them introspective.
Format as a JSON array of strings.

Example format:
[
  "💬 What is God saying to you personally through {passage}?",
  "🌱 How can you apply the truth of {passage} to grow in your spiritual journey this week?"
]`,
}

// BuildPrompt renders the generation prompt for one section. The second
// return is false for an unknown question type.
func BuildPrompt(t QuestionType, reference string) (string, bool) {
	template, ok := prompts[t]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(template, "{passage}", reference), true
}
