package channels

import (
	"encoding/json"
	"fmt"

	"github.com/clawinfra/skydeck/internal/providers"
)

// Resource URIs served by resources/read.
const (
	resourceServerInfo = "config://server-info"
	resourceAPISetup   = "config://api-setup"
)

// Resource describes a readable resource advertised via resources/list.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

func defaultResources() []Resource {
	return []Resource{
		{
			URI:         resourceServerInfo,
			Name:        "Server Information",
			Description: "Information about this tool server",
			MimeType:    "application/json",
		},
		{
			URI:         resourceAPISetup,
			Name:        "API Setup Guide",
			Description: "Guide for setting up required API keys",
			MimeType:    "text/plain",
		},
	}
}

// serverInfo is the config://server-info document.
type serverInfo struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
	Resources   []string `json:"resources"`
	APIsUsed    []string `json:"apis_used"`
}

// readResource returns the content and MIME type for a resource URI.
func (h *Handler) readResource(uri string) (string, string, error) {
	switch uri {
	case resourceServerInfo:
		specs := h.dispatcher.Specs()
		names := make([]string, 0, len(specs))
		for _, s := range specs {
			names = append(names, s.Name)
		}
		uris := make([]string, 0, len(h.resources))
		for _, r := range h.resources {
			uris = append(uris, r.URI)
		}
		info := serverInfo{
			Name:        h.serverName,
			Version:     h.version,
			Description: "A tool server with calculator, text analysis, weather, and aviation tools",
			Tools:       names,
			Resources:   uris,
			APIsUsed: []string{
				"Open-Meteo (free weather API, no key required)",
				"AviationStack (flight data, key required)",
			},
		}
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", "", fmt.Errorf("marshal server info: %w", err)
		}
		return string(out), "application/json", nil

	case resourceAPISetup:
		text := "API Setup Guide\n" +
			"===============\n\n" +
			"Weather and geocoding use Open-Meteo and need no credential.\n\n" +
			"Flight and airport lookups use AviationStack. Set the API key in the\n" +
			"environment before calling those tools:\n\n" +
			"  export " + providers.DefaultCredentialEnv + "=your_key_here\n\n" +
			"A free key is available at https://aviationstack.com/signup/free.\n" +
			"The key is read at call time, so it can be set or rotated without a\n" +
			"server restart."
		return text, "text/plain", nil

	default:
		return "", "", fmt.Errorf("unknown resource: %s", uri)
	}
}
