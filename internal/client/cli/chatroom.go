package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/HASANPOWER/Spectra-App/internal/client/chat"
	"github.com/HASANPOWER/Spectra-App/internal/client/models"
)

// chatRoom is the in-conversation loop. Plain lines send messages with the
// current burn setting; slash commands control the room:
//
//	/burn off|10s|1h|24h   — self-destruct timer for subsequent messages
//	/nick <name>           — nickname the other participant
//	/clear                 — delete the whole message history
//	/back                  — return to the main prompt
func (a *App) chatRoom(ctx context.Context, chatID, chatName string) error {
	selfID := a.state.ActiveID()
	burnSetting := models.BurnOff

	sess, err := chat.OpenSession(ctx, a.store, a.log, chatID, selfID, func(msgs []models.Message) {
		a.renderMessages(msgs, selfID)
	})
	if err != nil {
		return fmt.Errorf("failed to open conversation: %w", err)
	}
	defer sess.Close()

	printlnFn(fmt.Sprintf("-- %s -- (/back to leave, /burn, /nick, /clear)", chatName))

	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			parts := strings.Fields(line)
			arg := ""
			if len(parts) > 1 {
				arg = strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
			}

			switch parts[0] {
			case "/back":
				return nil
			case "/burn":
				timer, err := models.ParseBurnTimer(arg)
				if err != nil {
					printlnFn("Usage: /burn off|10s|1h|24h")
					continue
				}
				burnSetting = timer
				printlnFn("Burn timer:", string(burnSetting))
			case "/nick":
				if arg == "" {
					printlnFn("Usage: /nick <name>")
					continue
				}
				if err := a.chats.SaveNickname(ctx, chatID, selfID, arg); err != nil {
					printlnFn("Error:", err.Error())
					continue
				}
				chatName = arg
			case "/clear":
				if err := a.chats.ClearHistory(ctx, chatID); err != nil {
					printlnFn("Error:", err.Error())
				}
			default:
				printlnFn("Unknown command:", parts[0])
			}
			continue
		}

		if err := a.chats.Send(ctx, chatID, chatName, a.state.Persona(), selfID, line, burnSetting); err != nil {
			// Keep the text visible so the user can resend it.
			printlnFn("Not sent:", err.Error())
			printlnFn("Your message:", line)
		}
	}
}

// renderMessages prints the current message list. Burned messages simply
// disappear from the next render.
func (a *App) renderMessages(msgs []models.Message, selfID string) {
	for _, m := range msgs {
		who := m.SenderID
		if m.SentBy(selfID) {
			who = "me"
		}
		suffix := ""
		if m.Burn != models.BurnOff {
			suffix = " [burn " + string(m.Burn) + "]"
		}
		ts := ""
		if !m.CreatedAt.IsZero() {
			ts = m.CreatedAt.Local().Format("15:04") + " "
		}
		printlnFn(fmt.Sprintf("%s%s: %s%s", ts, who, m.Text, suffix))
	}
}
