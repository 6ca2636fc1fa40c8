// Command skydeck-tui is an interactive terminal client for a running
// skydeck server. Start the server with -serve, then:
//
//	skydeck-tui --addr ws://127.0.0.1:8799/ws
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clawinfra/skydeck/internal/tui"
)

func main() {
	addr := flag.String("addr", "ws://127.0.0.1:8799/ws", "skydeck WebSocket endpoint")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := tui.Dial(ctx, *addr)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error connecting to %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer client.Close() //nolint:errcheck

	program := tea.NewProgram(tui.NewModel(client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running TUI: %v\n", err)
		os.Exit(1)
	}
}
