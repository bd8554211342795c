package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/redmonkez12/user-auth-api/internal/user"
)

// Account is what the create-user form collects.
type Account struct {
	Username string
	Email    string
	Password string
}

// Missing reports whether any field still needs a prompt.
func (a Account) Missing() bool {
	return a.Username == "" || a.Email == "" || a.Password == ""
}

// RunAccountForm prompts for the fields of a that are empty.
func RunAccountForm(a *Account) error {
	var fields []huh.Field

	if a.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&a.Username).
			Validate(required(user.MsgInvalidUsername)))
	}
	if a.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&a.Email).
			Validate(required(user.MsgInvalidEmail)))
	}
	if a.Password == "" {
		fields = append(fields, passwordInput(&a.Password))
	}
	if len(fields) == 0 {
		return nil
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin()).Run(); err != nil {
		return err
	}

	a.Username = strings.TrimSpace(a.Username)
	a.Email = strings.TrimSpace(a.Email)
	return nil
}

// RunPasswordPrompt asks for a password with echo disabled.
func RunPasswordPrompt() (string, error) {
	var pw string
	err := huh.NewForm(huh.NewGroup(passwordInput(&pw))).WithTheme(huh.ThemeCatppuccin()).Run()
	return pw, err
}

func passwordInput(dst *string) *huh.Input {
	return huh.NewInput().
		Title("Password").
		Description(fmt.Sprintf("At least %d characters", user.MinPasswordLength)).
		EchoMode(huh.EchoModePassword).
		Value(dst).
		Validate(func(s string) error {
			if len(s) < user.MinPasswordLength {
				return errors.New(user.MsgInvalidPassword)
			}
			return nil
		})
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// PrintTitle prints a section heading.
func PrintTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

// PrintField prints one aligned label/value line.
func PrintField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

// PrintSuccess prints a success line.
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

// PrintError prints an error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+msg))
}
