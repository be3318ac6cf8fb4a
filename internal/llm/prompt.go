package llm

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt describes the citation discipline: the model answers
// from the retrieved sections only, and the detected entity kinds tell it
// whose records it is looking at.
func BuildSystemPrompt(entityKinds []string) string {
	var buf strings.Builder

	buf.WriteString(`You are a document assistant for care-services staff. Answer questions using ONLY the document sections provided.

RULES:
1. Base every statement on the provided sections; cite the document name and page.
2. If the sections do not contain the answer, say so explicitly.
3. Never speculate about people, cases or policies beyond the provided text.
`)

	if len(entityKinds) > 0 {
		fmt.Fprintf(&buf, "\nThe question references these entity kinds: %s. Keep statements about them tied to the sections that mention them.\n",
			strings.Join(entityKinds, ", "))
	}

	return buf.String()
}

// BuildPrompt renders the user message: the retrieved context followed by
// the question
func BuildPrompt(req AnswerRequest) string {
	if req.Prompt != "" {
		return req.Prompt
	}

	context := req.Context
	if strings.TrimSpace(context) == "" {
		context = "(no relevant document sections were found)"
	}

	return fmt.Sprintf("Document sections:\n\n%s\n\nQuestion: %s", context, req.Question)
}
