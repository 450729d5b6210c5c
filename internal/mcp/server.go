package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

const latestProtocolVersion = "2025-06-18"

var supportedProtocolVersions = map[string]bool{
	"2024-11-05": true,
	"2025-03-26": true,
	"2025-06-18": true,
}

// Collector runs one feedback request on a chosen backend and always returns a
// well-formed Result.
type Collector interface {
	Collect(ctx context.Context, req feedback.Request, choice feedback.Choice, timeout time.Duration) feedback.Result
}

type Config struct {
	Preference feedback.Preference
	Timeout    time.Duration
	// Capabilities is called once per tool call to snapshot the environment.
	Capabilities func() feedback.Capabilities
	Version      string
}

// Server implements an MCP stdio server exposing the interactive_feedback tool.
type Server struct {
	collector Collector
	cfg       Config
	logger    *slog.Logger

	writeMu sync.Mutex
	out     io.Writer

	callsMu sync.Mutex
	calls   map[string]*toolCall
	wg      sync.WaitGroup
}

// toolCall is an in-flight tools/call. A call cancelled by the client gets no
// response; one cancelled by shutdown still answers.
type toolCall struct {
	cancel          context.CancelFunc
	clientCancelled atomic.Bool
}

// NewServer creates a new MCP server.
func NewServer(collector Collector, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Server{
		collector: collector,
		cfg:       cfg,
		logger:    logger,
		calls:     make(map[string]*toolCall),
	}
}

// Run reads newline-delimited JSON-RPC from in and writes responses to out. It blocks
// until in is exhausted or ctx is cancelled. At EOF in-flight tool calls run to
// completion and are answered; on ctx cancellation they are cancelled first. Either
// way Run waits for them before it returns.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.out = out

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		// Increase buffer for large messages
		buf := make([]byte, 0, 1024*1024)
		scanner.Buffer(buf, 1024*1024)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-stop:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	defer s.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("mcp server stopping", "reason", ctx.Err())
			s.cancelAll()
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			s.handleLine(ctx, line)
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.writeError(nil, codeParseError, "parse error: "+err.Error())
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		if req.ID != nil {
			s.writeError(req.ID, codeInvalidRequest, "invalid request")
		}
		return
	}

	// tools/call blocks on a human, so it runs off the read loop.
	if req.Method == "tools/call" && req.ID != nil {
		s.startToolCall(ctx, &req)
		return
	}

	resp := s.handleRequest(&req)
	if resp != nil {
		s.writeResponse(resp)
	}
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		// Notification, no response
		return nil
	case "notifications/cancelled":
		s.handleCancelled(req)
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "ping":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]string{}}
	}

	if req.ID == nil {
		// Unknown notifications are ignored.
		return nil
	}
	return s.errorResponse(req.ID, codeMethodNotFound, "method not found: "+req.Method)
}

func (s *Server) handleInitialize(req *Request) *Response {
	version := latestProtocolVersion
	var params InitializeParams
	if err := decodeParams(req.Params, &params); err == nil && supportedProtocolVersions[params.ProtocolVersion] {
		version = params.ProtocolVersion
	}
	s.logger.Info("mcp client connected",
		"client", params.ClientInfo.Name,
		"client_version", params.ClientInfo.Version,
		"protocol", version,
	)

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: version,
			Capabilities: ServerCapabilities{
				Tools: &struct{}{},
			},
			ServerInfo: PeerInfo{
				Name:    "interactive-feedback",
				Version: s.cfg.Version,
			},
		},
	}
}

func (s *Server) handleToolsList(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  ToolsListResult{Tools: ToolDefinitions()},
	}
}

func (s *Server) handleCancelled(req *Request) {
	var params CancelledParams
	if err := decodeParams(req.Params, &params); err != nil || params.RequestID == nil {
		return
	}
	s.callsMu.Lock()
	call, ok := s.calls[idKey(params.RequestID)]
	s.callsMu.Unlock()
	if ok {
		s.logger.Info("tool call cancelled by client", "request_id", params.RequestID, "reason", params.Reason)
		call.clientCancelled.Store(true)
		call.cancel()
	}
}

func (s *Server) startToolCall(ctx context.Context, req *Request) {
	callCtx, cancel := context.WithCancel(ctx)
	key := idKey(req.ID)
	call := &toolCall{cancel: cancel}

	s.callsMu.Lock()
	s.calls[key] = call
	s.callsMu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.callsMu.Lock()
			delete(s.calls, key)
			s.callsMu.Unlock()
			cancel()
		}()

		resp := s.handleToolsCall(callCtx, req)
		if call.clientCancelled.Load() {
			return
		}
		s.writeResponse(resp)
	}()
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params CallToolParams
	if err := decodeParams(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  s.dispatchTool(ctx, params.Name, params.Arguments),
	}
}

func (s *Server) dispatchTool(ctx context.Context, name string, args map[string]interface{}) CallToolResult {
	switch name {
	case toolInteractiveFeedback:
		return s.toolInteractiveFeedback(ctx, args)
	default:
		return textResult(fmt.Sprintf("unknown tool: %s", name), true)
	}
}

func (s *Server) cancelAll() {
	s.callsMu.Lock()
	defer s.callsMu.Unlock()
	for _, call := range s.calls {
		call.cancel()
	}
}

// --- Response helpers ---

func (s *Server) writeResponse(resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("marshal response", "error", err)
		data, _ = json.Marshal(s.errorResponse(resp.ID, codeInternalError, "internal error"))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(id interface{}, code int, message string) {
	s.writeResponse(s.errorResponse(id, code, message))
}

func (s *Server) errorResponse(id interface{}, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
}

func textResult(text string, isError bool) CallToolResult {
	return CallToolResult{
		Content: []TextContent{{Type: "text", Text: text}},
		IsError: isError,
	}
}

// --- Argument helpers ---

func decodeParams(params interface{}, v interface{}) error {
	if params == nil {
		return nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// idKey normalizes JSON-RPC ids; numbers decode as float64 on both sides.
func idKey(id interface{}) string {
	return fmt.Sprintf("%T:%v", id, id)
}
