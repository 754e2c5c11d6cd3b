// Package tui holds the interactive terminal pieces: the inline login form,
// the validation spinner, and styled notices.
package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Credentials is the result of the inline login form.
type Credentials struct {
	Email    string
	Password string
}

// LoginForm renders the inline login form and returns the entered
// credentials. It is shown in place when a guarded command finds no session,
// instead of bouncing the user out of the command.
func LoginForm() (Credentials, error) {
	var creds Credentials

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&creds.Email).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return Credentials{}, fmt.Errorf("login form failed: %w", err)
	}

	return creds, nil
}

// ConfirmDelete renders a yes/no confirmation before destructive operations.
func ConfirmDelete(what string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", what)).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}

// SelectRole renders a role picker for 'auth switch-role'.
func SelectRole(options []string) (string, error) {
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Preview as role").
			Options(huhOptions...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("role picker failed: %w", err)
	}
	return selected, nil
}
