package chat

import (
	"strings"

	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/domain/profile"
)

// HistoryWindow bounds the conversation context sent upstream: the 10 most
// recent messages, i.e. five exchanges.
const HistoryWindow = 10

// BuildChatTurns assembles the role-tagged turn sequence for one chat
// completion. History is replayed as alternating user/model turns in
// chronological order; the persona preamble plus the new user message is
// always the final user turn.
func BuildChatTurns(prof *profile.Profile, history []Message, newMessage string) []llm.Content {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	turns := make([]llm.Content, 0, len(history)+1)
	for _, msg := range history {
		if msg.Role == RoleAssistant {
			turns = append(turns, llm.NewModelTurn(msg.Content))
		} else {
			turns = append(turns, llm.NewUserTurn(msg.Content))
		}
	}

	return append(turns, llm.NewUserTurn(personalizedPrompt(prof, newMessage)))
}

// personalizedPrompt renders the persona, the strict output-format
// instruction, the profile memory block when present, and the new message.
func personalizedPrompt(prof *profile.Profile, newMessage string) string {
	var sb strings.Builder

	sb.WriteString("You are a deeply empathetic, warm friend and counselor.\n")
	sb.WriteString("Your role is to understand how the user feels and to offer comfort and support. " +
		"Never blame or judge the user.\n\n")
	sb.WriteString("Respond to [the user's new message] with exactly one JSON object containing these three keys:\n")
	sb.WriteString("1. 'reply': a warm, empathetic response to the user's message (use \\n for line breaks)\n")
	sb.WriteString("2. 'emotion': the user's emotional state (e.g. 'stressed', 'anxious', 'tired', 'neutral', 'positive')\n")
	sb.WriteString("3. 'stressCause': the cause of the user's stress (e.g. 'workload', 'meetings', 'deadline', 'anxiety', 'other')\n\n")
	sb.WriteString("Important: never include any text outside the JSON object (no '```json', no 'Here is my answer:').\n\n")

	if prof.HasSummary() {
		sb.WriteString("[What you should remember about this user]\n")
		sb.WriteString(" - Summary of earlier conversations: ")
		sb.WriteString(prof.Summary)
		sb.WriteString("\n - The user's current emotional state: ")
		sb.WriteString(prof.Sentiment)
		sb.WriteString("\nUse this to comfort and empathize with the user.\n\n")
	}

	sb.WriteString("[The user's new message]\n")
	sb.WriteString(newMessage)
	sb.WriteString("\n\nJSON response: ")

	return sb.String()
}
