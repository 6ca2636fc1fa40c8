// Package channels contains the transport adapters: a stdio JSON-RPC loop,
// a WebSocket endpoint, and an MQTT bridge. All three frame requests into
// the same RPC handler, so every transport yields identical content for
// identical calls.
package channels

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/clawinfra/skydeck/internal/dispatch"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// protocolVersion is the advertised wire protocol revision.
const protocolVersion = "2024-11-05"

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toolDescriptor is the tools/list wire shape.
type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type readResourceParams struct {
	URI string `json:"uri"`
}

// Handler answers JSON-RPC frames on behalf of the dispatcher. It is shared
// by all transports and safe for concurrent use.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	resources  []Resource
	serverName string
	version    string
	logger     *slog.Logger
}

// NewHandler creates the RPC handler for a dispatcher.
func NewHandler(d *dispatch.Dispatcher, serverName, version string, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: d,
		resources:  defaultResources(),
		serverName: serverName,
		version:    version,
		logger:     logger.With("component", "rpc"),
	}
}

// Handle processes one raw JSON-RPC frame and returns the marshaled reply.
// A nil return means no reply is due (notifications). Tool-level failures
// never surface here: they are in-band text blocks inside a success reply.
func (h *Handler) Handle(ctx context.Context, raw []byte) []byte {
	var req rpcRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return marshalResponse(rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "parse error: " + err.Error()},
		})
	}

	// Notifications carry no id and get no reply.
	isNotification := len(req.ID) == 0 || string(req.ID) == "null"

	resp := h.route(ctx, &req)
	if isNotification {
		return nil
	}
	resp.JSONRPC = "2.0"
	resp.ID = req.ID
	return marshalResponse(resp)
}

func (h *Handler) route(ctx context.Context, req *rpcRequest) rpcResponse {
	switch req.Method {
	case "initialize":
		return rpcResponse{Result: map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]any{
				"name":    h.serverName,
				"version": h.version,
			},
			"capabilities": map[string]any{
				"tools":     map[string]any{},
				"resources": map[string]any{},
			},
		}}

	case "ping":
		return rpcResponse{Result: map[string]any{}}

	case "tools/list":
		specs := h.dispatcher.Specs()
		descriptors := make([]toolDescriptor, 0, len(specs))
		for _, s := range specs {
			descriptors = append(descriptors, toolDescriptor{
				Name:        s.Name,
				Description: s.Description,
				InputSchema: s.InputSchema(),
			})
		}
		return rpcResponse{Result: map[string]any{"tools": descriptors}}

	case "tools/call":
		var params toolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
			return rpcResponse{Error: &rpcError{Code: codeInvalidParams, Message: "tools/call requires a tool name"}}
		}
		if params.Arguments == nil {
			params.Arguments = map[string]any{}
		}
		result := h.dispatcher.Dispatch(ctx, params.Name, params.Arguments)
		return rpcResponse{Result: result}

	case "resources/list":
		return rpcResponse{Result: map[string]any{"resources": h.resources}}

	case "resources/read":
		var params readResourceParams
		if err := json.Unmarshal(req.Params, &params); err != nil || params.URI == "" {
			return rpcResponse{Error: &rpcError{Code: codeInvalidParams, Message: "resources/read requires a uri"}}
		}
		content, mimeType, err := h.readResource(params.URI)
		if err != nil {
			return rpcResponse{Error: &rpcError{Code: codeInvalidParams, Message: err.Error()}}
		}
		return rpcResponse{Result: map[string]any{
			"contents": []map[string]any{{
				"uri":      params.URI,
				"mimeType": mimeType,
				"text":     content,
			}},
		}}

	default:
		h.logger.Debug("unknown method", "method", req.Method)
		return rpcResponse{Error: &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}}
	}
}

func marshalResponse(resp rpcResponse) []byte {
	out, err := json.Marshal(resp)
	if err != nil {
		// Marshal of our own response types cannot fail with well-formed
		// content; fall back to a static error frame.
		return []byte(`{"jsonrpc":"2.0","error":{"code":-32603,"message":"internal error"}}`)
	}
	return out
}
