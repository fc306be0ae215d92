package cli

import (
	"context"
	"fmt"

	"github.com/HASANPOWER/Spectra-App/internal/client/models"
)

// SetPin prompts for a new PIN twice and enables PIN protection. The
// confirm prompt is the one re-entered on mismatch.
func (a *App) SetPin(ctx context.Context) error {
	pin, err := getPin("New PIN (4 digits)", stdout())
	if err != nil {
		return err
	}
	for {
		confirm, err := getPin("Confirm PIN", stdout())
		if err != nil {
			return err
		}
		err = a.security.EnablePin(ctx, pin, confirm)
		if err == nil {
			printlnFn("PIN enabled.")
			return nil
		}
		if confirm != pin {
			printlnFn("PINs do not match, re-enter confirmation.")
			continue
		}
		return err
	}
}

// ChangePin replaces the stored PIN. No re-authentication is required
// beyond having unlocked the app.
func (a *App) ChangePin(ctx context.Context) error {
	pin, err := getPin("New PIN (4 digits)", stdout())
	if err != nil {
		return err
	}
	confirm, err := getPin("Confirm PIN", stdout())
	if err != nil {
		return err
	}
	if err := a.security.ChangePin(ctx, pin, confirm); err != nil {
		return err
	}
	printlnFn("PIN changed.")
	return nil
}

func (a *App) DisablePin(ctx context.Context) error {
	if err := a.security.DisablePin(ctx); err != nil {
		return err
	}
	printlnFn("PIN disabled.")
	return nil
}

func (a *App) EnableBiometric(ctx context.Context) error {
	if err := a.security.EnableBiometric(ctx); err != nil {
		return err
	}
	printlnFn("Biometric unlock enabled.")
	return nil
}

func (a *App) DisableBiometric(ctx context.Context) error {
	if err := a.security.DisableBiometric(ctx); err != nil {
		return err
	}
	printlnFn("Biometric unlock disabled.")
	return nil
}

// SwitchPersona changes the active identity and reopens the inbox, so the
// conversation list never mixes personas.
func (a *App) SwitchPersona(ctx context.Context, arg string) error {
	p, err := models.ParsePersona(arg)
	if err != nil {
		return err
	}
	if err := a.state.SwitchPersona(ctx, p); err != nil {
		return err
	}
	return a.openInbox(ctx)
}

// ShowIDs prints the identifier triple, marking the active one.
func (a *App) ShowIDs(ctx context.Context) error {
	active := a.state.Persona()
	for _, p := range []models.Persona{models.PersonaFamily, models.PersonaWork, models.PersonaGhost} {
		mark := " "
		if p == active {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %-6s %s", mark, p, a.state.IDs().For(p)))
	}
	return nil
}

func (a *App) SetLanguage(ctx context.Context, arg string) error {
	return a.state.SetLanguage(ctx, arg)
}

func (a *App) SetDarkMode(ctx context.Context, arg string) error {
	switch arg {
	case "on":
		return a.state.SetDarkMode(ctx, true)
	case "off":
		return a.state.SetDarkMode(ctx, false)
	}
	return fmt.Errorf("usage: dark on|off")
}

// LockNow re-arms the lock gate immediately and walks it again. Failing to
// unlock ends the program.
func (a *App) LockNow(ctx context.Context) error {
	a.security.Lock(ctx)
	if !a.unlock(ctx) {
		return errQuit
	}
	return nil
}
