// Command authctl is an operator tool for the user auth API: it hashes
// passwords, creates accounts against the configured store and mints
// tokens for debugging.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "authctl",
		Short:         "Administer the user auth API",
		Long:          "Hash passwords, create users and issue tokens using the same configuration as the API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash of a password",
		RunE:  runHashPassword,
	}
	hashCmd.Flags().String("password", "", "Password to hash (prompted when empty)")

	createCmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user in the configured store",
		RunE:  runCreateUser,
	}
	createCmd.Flags().String("username", "", "Username")
	createCmd.Flags().String("email", "", "Email address")
	createCmd.Flags().String("password", "", "Password (prompted when empty)")
	createCmd.Flags().Bool("no-input", false, "Fail instead of prompting for missing fields")

	issueCmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint a login token for a user id",
		RunE:  runIssueToken,
	}
	issueCmd.Flags().String("user-id", "", "User id to put in the token")
	issueCmd.Flags().Int("days", 0, "Token lifetime in days (defaults to JWT_EXPIRE)")
	_ = issueCmd.MarkFlagRequired("user-id")

	rootCmd.AddCommand(hashCmd, createCmd, issueCmd)
	return rootCmd
}
