package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func stdout() io.Writer { return os.Stdout }

// errQuit signals the REPL to stop.
var errQuit = errors.New("quit")

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a stub.
type execIface interface {
	Chats(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	NewChat(ctx context.Context) error
	SwitchPersona(ctx context.Context, arg string) error
	ShowIDs(ctx context.Context) error
	SetPin(ctx context.Context) error
	ChangePin(ctx context.Context) error
	DisablePin(ctx context.Context) error
	EnableBiometric(ctx context.Context) error
	DisableBiometric(ctx context.Context) error
	SetLanguage(ctx context.Context, arg string) error
	SetDarkMode(ctx context.Context, arg string) error
	LockNow(ctx context.Context) error
}

// runREPL reads lines from scanner, parses the first token as the command
// and dispatches. Unknown commands are reported back. The loop ends on EOF,
// "exit"/"quit", or when a handler returns errQuit.
//
// Commands:
//
//	chats | l            — list conversations of the active identity
//	open <n|id>          — enter a conversation (by list number or ID)
//	new                  — start a conversation with a spectra ID
//	persona <name>       — switch to family, work or ghost
//	ids                  — show the identifier triple
//	setpin | changepin | disablepin
//	enablebio | disablebio
//	lang <code>          — UI language
//	dark on|off          — dark mode
//	lock                 — re-lock immediately
//	exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("spectra (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: (l)chats, open <n|id>, new, persona <name>, ids,")
			printlnFn("  setpin, changepin, disablepin, enablebio, disablebio,")
			printlnFn("  lang <code>, dark on|off, lock, exit")

		case "l", "chats":
			err = a.Chats(ctx)

		case "open":
			if arg == "" {
				printlnFn("Usage: open <n|id>")
				continue
			}
			err = a.Open(ctx, arg)

		case "new":
			err = a.NewChat(ctx)

		case "persona":
			if arg == "" {
				printlnFn("Usage: persona <family|work|ghost>")
				continue
			}
			err = a.SwitchPersona(ctx, arg)

		case "ids":
			err = a.ShowIDs(ctx)

		case "setpin":
			err = a.SetPin(ctx)

		case "changepin":
			err = a.ChangePin(ctx)

		case "disablepin":
			err = a.DisablePin(ctx)

		case "enablebio":
			err = a.EnableBiometric(ctx)

		case "disablebio":
			err = a.DisableBiometric(ctx)

		case "lang":
			if arg == "" {
				printlnFn("Usage: lang <code>")
				continue
			}
			err = a.SetLanguage(ctx, arg)

		case "dark":
			if arg == "" {
				printlnFn("Usage: dark on|off")
				continue
			}
			err = a.SetDarkMode(ctx, arg)

		case "lock":
			err = a.LockNow(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
