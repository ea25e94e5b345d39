// Package studyguide contains the pure business logic for discussion
// materials. This is part of the Functional Core - no I/O, only pure
// functions; talking to the AI provider is the adapter's job.
package studyguide

import (
	"fmt"
	"strings"
)

// QuestionType identifies one section of a study guide.
type QuestionType string

const (
	TypeApplication QuestionType = "application"
	TypeDiscussion  QuestionType = "discussion"
	TypeReflection  QuestionType = "reflection"
)

// QuestionTypes returns the guide sections in presentation order.
func QuestionTypes() []QuestionType {
	return []QuestionType{TypeApplication, TypeDiscussion, TypeReflection}
}

// MaxQuestionsPerType caps how many generated questions a section keeps.
const MaxQuestionsPerType = 5

// Guide is the generated discussion material for one passage. The JSON
// field names double as the export file format.
type Guide struct {
	Passage     string   `json:"passage"`
	Reference   string   `json:"reference"`
	Theme       string   `json:"theme,omitempty"`
	Application []string `json:"application"`
	Discussion  []string `json:"discussion"`
	Reflection  []string `json:"reflection"`
}

// Questions returns the questions of one section.
func (g Guide) Questions(t QuestionType) []string {
	switch t {
	case TypeApplication:
		return g.Application
	case TypeDiscussion:
		return g.Discussion
	case TypeReflection:
		return g.Reflection
	}
	return nil
}

// Compose assembles a guide from generated questions. Each section is
// capped at MaxQuestionsPerType, empty sections fall back to the
// built-in questions, and the standing questions are always appended
// to the reflection section.
func Compose(passageTitle, reference, theme string, generated map[QuestionType][]string) Guide {
	guide := Guide{Passage: passageTitle, Reference: reference, Theme: theme}

	for _, t := range QuestionTypes() {
		questions := Clamp(generated[t])
		if len(questions) == 0 {
			questions = FallbackQuestions(t, reference)
		}
		switch t {
		case TypeApplication:
			guide.Application = questions
		case TypeDiscussion:
			guide.Discussion = questions
		case TypeReflection:
			guide.Reflection = questions
		}
	}

	guide.Reflection = append(guide.Reflection, StandingQuestions(reference)...)
	return guide
}

// Clamp trims blank questions and caps the list at MaxQuestionsPerType.
func Clamp(questions []string) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == MaxQuestionsPerType {
			break
		}
	}
	return out
}

// FallbackQuestions returns the built-in questions used when generation
// fails or returns nothing. They reference the passage directly so a
// guide is always usable offline.
func FallbackQuestions(t QuestionType, reference string) []string {
	switch t {
	case TypeApplication:
		return []string{
			fmt.Sprintf("How can you apply the message of %s in your daily life?", reference),
			fmt.Sprintf("What changes might %s inspire you to make?", reference),
		}
	case TypeDiscussion:
		return []string{
			fmt.Sprintf("What stands out to you most in %s and why?", reference),
			fmt.Sprintf("How does %s challenge your current understanding?", reference),
			fmt.Sprintf("What questions does %s raise for you?", reference),
			"🙏 What does this passage teach us about God?",
			"👥 What does this passage teach us about man?",
		}
	case TypeReflection:
		return []string{
			fmt.Sprintf("How does %s speak to your current life situation?", reference),
			fmt.Sprintf("What is God saying to you through %s?", reference),
		}
	}
	return []string{fmt.Sprintf("What are your thoughts on %s?", reference)}
}

// StandingQuestions returns the four questions included with every
// guide regardless of what the provider generated.
func StandingQuestions(reference string) []string {
	return []string{
		fmt.Sprintf("🌌 **Divine Nature**: What does %s reveal about God's character and nature?", reference),
		fmt.Sprintf("👥 **Human Condition**: How does %s help us understand humanity's relationship with God?", reference),
		fmt.Sprintf("💡 **Key Truth**: What is the most important spiritual truth we should take away from %s?", reference),
		fmt.Sprintf("🔄 **Transformation**: How should %s change the way we live our daily lives?", reference),
	}
}

// FileName returns the export file name for a guide, with everything
// outside [A-Za-z0-9] in the passage replaced by underscores.
func FileName(passage string) string {
	var b strings.Builder
	for _, c := range passage {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	return "study_guide_" + b.String() + ".json"
}
