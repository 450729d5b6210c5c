package mcp

import (
	"context"
	"encoding/json"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

func (s *Server) toolInteractiveFeedback(ctx context.Context, args map[string]interface{}) CallToolResult {
	message, ok := args["message"].(string)
	if !ok {
		return textResult("message is required and must be a string", true)
	}

	req := feedback.NewRequest(message, getStringList(args, "predefined_options"))
	result := s.collectFeedback(ctx, req)

	data, err := json.Marshal(result)
	if err != nil {
		return textResult("marshal error: "+err.Error(), true)
	}
	out := textResult(string(data), false)
	out.StructuredContent = result
	return out
}

// collectFeedback selects a backend and delegates to the collector. Selection
// failures become an empty reply, never an RPC error.
func (s *Server) collectFeedback(ctx context.Context, req feedback.Request) feedback.Result {
	var caps feedback.Capabilities
	if s.cfg.Capabilities != nil {
		caps = s.cfg.Capabilities()
	}

	choice, err := feedback.Select(s.cfg.Preference, caps)
	if err != nil {
		s.logger.Warn("no feedback backend available, replying with empty feedback",
			"error", err,
			"preference", s.cfg.Preference,
			"display", caps.Display,
			"gui_toolkit", caps.GUIToolkit,
			"web", caps.WebResource,
			"terminal", caps.Terminal,
		)
		return feedback.Empty()
	}

	s.logger.Info("collecting feedback", "backend", choice.String(), "options", len(req.Options))
	return s.collector.Collect(ctx, req, choice, s.cfg.Timeout)
}

// getStringList coerces a JSON array of strings. Anything else, including an array
// with a non-string element, counts as absent.
func getStringList(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}
