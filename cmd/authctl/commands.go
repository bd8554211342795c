package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/user-auth-api/cmd/authctl/ui"
	"github.com/redmonkez12/user-auth-api/internal/auth"
	"github.com/redmonkez12/user-auth-api/internal/config"
	"github.com/redmonkez12/user-auth-api/internal/logging"
	"github.com/redmonkez12/user-auth-api/internal/password"
	"github.com/redmonkez12/user-auth-api/internal/user"
)

func runHashPassword(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	plaintext, _ := cmd.Flags().GetString("password")

	if plaintext == "" {
		var err error
		if plaintext, err = ui.RunPasswordPrompt(); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		ui.PrintError(cmd.ErrOrStderr(), err.Error())
		return err
	}

	fmt.Fprintln(out, hash)
	return nil
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var acct ui.Account
	acct.Username, _ = cmd.Flags().GetString("username")
	acct.Email, _ = cmd.Flags().GetString("email")
	acct.Password, _ = cmd.Flags().GetString("password")
	noInput, _ := cmd.Flags().GetBool("no-input")

	if acct.Missing() {
		if noInput {
			return errors.New("username, email and password are required")
		}
		if err := ui.RunAccountForm(&acct); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := user.OpenStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = closeStore(context.Background()) }()

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	svc := auth.NewService(store, tokens, logging.Discard(), cfg.Auth.SignupTokenDuration, cfg.Auth.TokenDuration())
	token, created, err := svc.Signup(ctx, acct.Username, acct.Email, acct.Password)
	if err != nil {
		var verr *user.ValidationError
		switch {
		case errors.As(err, &verr):
			for _, f := range verr.Fields {
				ui.PrintError(cmd.ErrOrStderr(), f.Param+": "+f.Msg)
			}
		case errors.Is(err, auth.ErrUserExists):
			ui.PrintError(cmd.ErrOrStderr(), auth.MsgUserExists)
		default:
			ui.PrintError(cmd.ErrOrStderr(), err.Error())
		}
		return err
	}

	ui.PrintSuccess(out, "User created")
	ui.PrintField(out, "ID", created.ID)
	ui.PrintField(out, "Username", created.Username)
	ui.PrintField(out, "Email", created.Email)
	ui.PrintField(out, "Token", token)
	return nil
}

func runIssueToken(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	userID, _ := cmd.Flags().GetString("user-id")
	days, _ := cmd.Flags().GetInt("days")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if days <= 0 {
		days = cfg.Auth.TokenExpireDays
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	ttl := time.Duration(days) * 24 * time.Hour
	token, err := tokens.Issue(userID, ttl)
	if err != nil {
		ui.PrintError(cmd.ErrOrStderr(), err.Error())
		return err
	}

	ui.PrintTitle(out, "Token")
	ui.PrintField(out, "User", userID)
	ui.PrintField(out, "Strategy", cfg.Auth.TokenStrategy)
	ui.PrintField(out, "Expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	fmt.Fprintln(out, token)
	return nil
}
