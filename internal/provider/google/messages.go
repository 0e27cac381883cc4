package google

import (
	"encoding/json"

	ai "github.com/spetersoncode/scout"
	"google.golang.org/genai"
)

// convertMessages maps a transcript to Gemini contents. System messages are
// returned separately as the system instruction. Gemini correlates function
// responses by name, so each result is labeled with the name of the call it
// answers, and results that follow one another share one content.
func convertMessages(messages []ai.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var system *genai.Content
	names := map[string]string{}
	lastWasTool := false

	for _, msg := range messages {
		isTool := msg.Role == ai.RoleTool
		switch msg.Role {
		case ai.RoleSystem:
			if msg.Content == "" {
				break
			}
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: msg.Content})
		case ai.RoleUser:
			if msg.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: msg.Content}},
				})
			}
		case ai.RoleAssistant:
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, &genai.Part{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				names[tc.ID] = tc.Name
				args := map[string]any{}
				if tc.Arguments != "" {
					_ = json.Unmarshal([]byte(tc.Arguments), &args)
				}
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{ID: tc.ID, Name: tc.Name, Args: args},
				})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}
		case ai.RoleTool:
			var parts []*genai.Part
			for _, tr := range msg.ToolResults {
				key := "output"
				if tr.IsError {
					key = "error"
				}
				parts = append(parts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						ID:       tr.ToolCallID,
						Name:     names[tr.ToolCallID],
						Response: map[string]any{key: tr.Content},
					},
				})
			}
			if len(parts) == 0 {
				break
			}
			if lastWasTool && len(contents) > 0 {
				last := contents[len(contents)-1]
				last.Parts = append(last.Parts, parts...)
			} else {
				contents = append(contents, &genai.Content{Role: "user", Parts: parts})
			}
		}
		lastWasTool = isTool
	}

	return contents, system
}
