package testutil

import "jadoo/model"

// TestMessages returns a sample conversation for testing
func TestMessages() []model.ChatMessage {
	return []model.ChatMessage{
		{Role: model.RoleUser, Content: "Hello, how are you?"},
		{Role: model.RoleAssistant, Content: "I'm doing well, thank you!"},
		{Role: model.RoleUser, Content: "Can you help me with a task?"},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.ChatMessage {
	return []model.ChatMessage{
		{Role: model.RoleUser, Content: content},
	}
}

// SystemMessage returns a system message for testing
func SystemMessage(content string) model.ChatMessage {
	return model.ChatMessage{Role: model.RoleSystem, Content: content}
}

// Conversation returns persisted messages with ids and timestamps.
func Conversation(pairs ...string) []model.Message {
	out := make([]model.Message, 0, len(pairs))
	for i, content := range pairs {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		out = append(out, model.NewMessage(role, content))
	}
	return out
}
