package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// getSimpleText is a test seam for interactive line input.
var getSimpleText = GetSimpleText

// Chats prints the conversation list of the active identity, most recently
// updated first. Row numbers feed the "open <n>" command.
func (a *App) Chats(ctx context.Context) error {
	rows := a.currentRows()
	if len(rows) == 0 {
		printlnFn("No conversations yet. Use 'new' to start one.")
		return nil
	}
	for i, r := range rows {
		printlnFn(fmt.Sprintf("%2d. %-20s %s  (%s)", i+1, r.Name, truncate(r.LastMessage, 40), r.When))
	}
	return nil
}

// Open enters a conversation: by list number, or by a peer spectra ID
// which starts a new conversation if needed.
func (a *App) Open(ctx context.Context, arg string) error {
	rows := a.currentRows()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(rows) {
			return fmt.Errorf("no conversation %d", n)
		}
		return a.chatRoom(ctx, rows[n-1].ChatID, rows[n-1].Name)
	}

	chatID, chatName, err := a.chats.StartChat(ctx, a.state.ActiveID(), arg)
	if err != nil {
		return err
	}
	return a.chatRoom(ctx, chatID, chatName)
}

// NewChat prompts for a peer spectra ID and opens the conversation.
func (a *App) NewChat(ctx context.Context) error {
	peer, err := getSimpleText(a.reader, "Enter spectra ID (e.g. @ABC-123)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.TrimSpace(peer) == "" {
		return nil
	}

	chatID, chatName, err := a.chats.StartChat(ctx, a.state.ActiveID(), peer)
	if err != nil {
		return err
	}
	return a.chatRoom(ctx, chatID, chatName)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
