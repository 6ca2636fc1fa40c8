package channels

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/clawinfra/skydeck/internal/dispatch"
	"github.com/clawinfra/skydeck/internal/providers"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Offline backends: the tests below only exercise local tools and the
	// wire framing, never a provider round-trip.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	geocoder := providers.NewGeocoder(srv.URL, time.Second, logger)
	weather := providers.NewWeatherClient(srv.URL, time.Second, logger)
	aviation := providers.NewAviationClient(srv.URL, "SKYDECK_TEST_AVIATION_KEY", time.Second, 0, 0, logger)

	d, err := dispatch.New(geocoder, weather, aviation, logger)
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(d, "skydeck", "0.2.0", logger)
}

func handleJSON(t *testing.T, h *Handler, frame string) map[string]any {
	t.Helper()
	raw := h.Handle(context.Background(), []byte(frame))
	if raw == nil {
		t.Fatal("expected a reply frame")
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("reply is not valid JSON: %v\n%s", err, raw)
	}
	return decoded
}

func TestHandleInitialize(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	result, ok := resp["result"].(map[string]any)
	if !ok {
		t.Fatalf("missing result: %v", resp)
	}
	if result["protocolVersion"] != protocolVersion {
		t.Errorf("unexpected protocol version: %v", result["protocolVersion"])
	}
	info, _ := result["serverInfo"].(map[string]any)
	if info["name"] != "skydeck" || info["version"] != "0.2.0" {
		t.Errorf("unexpected server info: %v", info)
	}
	if resp["id"] != float64(1) {
		t.Errorf("id not echoed: %v", resp["id"])
	}
}

func TestHandlePing(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":"p1","method":"ping"}`)
	if _, ok := resp["result"]; !ok {
		t.Errorf("ping should return an empty result: %v", resp)
	}
	if resp["id"] != "p1" {
		t.Errorf("string id not echoed: %v", resp["id"])
	}
}

func TestHandleToolsList(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	result := resp["result"].(map[string]any)
	toolList, ok := result["tools"].([]any)
	if !ok {
		t.Fatalf("missing tools array: %v", result)
	}
	if len(toolList) != 7 {
		t.Fatalf("expected 7 tools, got %d", len(toolList))
	}

	first := toolList[0].(map[string]any)
	if first["name"] != "calculator" {
		t.Errorf("first tool should be calculator: %v", first["name"])
	}
	schema, ok := first["inputSchema"].(map[string]any)
	if !ok || schema["type"] != "object" {
		t.Errorf("malformed inputSchema: %v", first["inputSchema"])
	}

	last := toolList[6].(map[string]any)
	if last["name"] != "get_location_data" {
		t.Errorf("last tool should be get_location_data: %v", last["name"])
	}
}

func TestHandleToolsCall(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"calculator","arguments":{"expression":"2 + 3 * 4"}}}`)
	result := resp["result"].(map[string]any)
	content, ok := result["content"].([]any)
	if !ok || len(content) != 1 {
		t.Fatalf("expected one content block: %v", result)
	}
	block := content[0].(map[string]any)
	if block["type"] != "text" {
		t.Errorf("unexpected block type: %v", block["type"])
	}
	if !strings.Contains(block["text"].(string), "= 14") {
		t.Errorf("unexpected text: %v", block["text"])
	}
}

func TestHandleToolsCallToolErrorIsInBand(t *testing.T) {
	h := testHandler(t)

	// A failing tool still yields a JSON-RPC success with isError content.
	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"calculator","arguments":{}}}`)
	if _, hasErr := resp["error"]; hasErr {
		t.Fatalf("tool failure must not be a wire error: %v", resp)
	}
	result := resp["result"].(map[string]any)
	if result["isError"] != true {
		t.Errorf("expected isError flag: %v", result)
	}
}

func TestHandleToolsCallMissingName(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{}}`)
	rpcErr, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected wire error: %v", resp)
	}
	if rpcErr["code"] != float64(codeInvalidParams) {
		t.Errorf("unexpected code: %v", rpcErr["code"])
	}
}

func TestHandleParseError(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{not json`)
	rpcErr, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected wire error: %v", resp)
	}
	if rpcErr["code"] != float64(codeParseError) {
		t.Errorf("unexpected code: %v", rpcErr["code"])
	}
}

func TestHandleMethodNotFound(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":6,"method":"bogus/method"}`)
	rpcErr, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected wire error: %v", resp)
	}
	if rpcErr["code"] != float64(codeMethodNotFound) {
		t.Errorf("unexpected code: %v", rpcErr["code"])
	}
}

func TestHandleNotificationGetsNoReply(t *testing.T) {
	h := testHandler(t)

	if raw := h.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)); raw != nil {
		t.Errorf("notification should get no reply, got %s", raw)
	}
	if raw := h.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","id":null,"method":"ping"}`)); raw != nil {
		t.Errorf("null-id request should get no reply, got %s", raw)
	}
}

func TestHandleResourcesList(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":7,"method":"resources/list"}`)
	result := resp["result"].(map[string]any)
	resourceList, ok := result["resources"].([]any)
	if !ok || len(resourceList) != 2 {
		t.Fatalf("expected 2 resources: %v", result)
	}
	first := resourceList[0].(map[string]any)
	if first["uri"] != resourceServerInfo {
		t.Errorf("unexpected first resource: %v", first["uri"])
	}
}

func TestHandleResourcesRead(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":8,"method":"resources/read","params":{"uri":"config://server-info"}}`)
	result := resp["result"].(map[string]any)
	contents, ok := result["contents"].([]any)
	if !ok || len(contents) != 1 {
		t.Fatalf("expected one contents entry: %v", result)
	}
	entry := contents[0].(map[string]any)
	if entry["mimeType"] != "application/json" {
		t.Errorf("unexpected mime type: %v", entry["mimeType"])
	}

	var info map[string]any
	if err := json.Unmarshal([]byte(entry["text"].(string)), &info); err != nil {
		t.Fatalf("server-info is not valid JSON: %v", err)
	}
	toolNames, _ := info["tools"].([]any)
	if len(toolNames) != 7 {
		t.Errorf("expected 7 tool names, got %v", info["tools"])
	}

	resp = handleJSON(t, h, `{"jsonrpc":"2.0","id":9,"method":"resources/read","params":{"uri":"config://api-setup"}}`)
	result = resp["result"].(map[string]any)
	entry = result["contents"].([]any)[0].(map[string]any)
	if !strings.Contains(entry["text"].(string), providers.DefaultCredentialEnv) {
		t.Errorf("api-setup should name the credential env var:\n%v", entry["text"])
	}
}

func TestHandleResourcesReadUnknownURI(t *testing.T) {
	h := testHandler(t)

	resp := handleJSON(t, h, `{"jsonrpc":"2.0","id":10,"method":"resources/read","params":{"uri":"config://nope"}}`)
	if _, ok := resp["error"].(map[string]any); !ok {
		t.Fatalf("expected wire error for unknown resource: %v", resp)
	}
}
