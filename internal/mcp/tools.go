package mcp

const toolInteractiveFeedback = "interactive_feedback"

// ToolDefinitions returns the MCP tool definitions for the feedback server.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name: toolInteractiveFeedback,
			Description: "Request interactive feedback from the user. " +
				"Shows the message to a human (web page, native window or terminal) and blocks until they answer " +
				"or the request times out. Returns {\"interactive_feedback\": \"...\"}; an empty string means no feedback.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"message": {Type: "string", Description: "The specific question for the user"},
					"predefined_options": {Type: "array", Description: "Predefined options for the user to choose from (optional)",
						Items: &Property{Type: "string"}},
				},
				Required: []string{"message"},
			},
		},
	}
}
