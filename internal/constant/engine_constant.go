package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	// Watermill topic for asynchronous handoff delivery.
	HandoffDispatchTopic = "HANDOFF_DISPATCH"
)
