package cmd

import (
	"errors"
	"fmt"

	"github.com/nfrund/learnhub/internal/config"
	"github.com/nfrund/learnhub/internal/server"
	"github.com/spf13/cobra"
)

var unlockEmail string

var unlockCmd = &cobra.Command{
	Use:     "unlock",
	Short:   "Reset the failed sign-in counter of an account",
	Example: `  learnhub-cli unlock --email student@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if unlockEmail == "" {
			return errors.New("--email is required")
		}
		store, err := server.OpenStore(cmd.Context(), config.New())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		if err := store.UnlockUser(cmd.Context(), unlockEmail); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", unlockEmail)
		return nil
	},
}

func init() {
	unlockCmd.Flags().StringVar(&unlockEmail, "email", "", "Email address of the locked account")
	rootCmd.AddCommand(unlockCmd)
}
