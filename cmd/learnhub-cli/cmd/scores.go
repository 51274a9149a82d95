package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nfrund/learnhub/internal/modules/quizzes"
	"github.com/spf13/cobra"
)

var (
	scoresEmail    string
	scoresPassword string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the quiz scores of a student",
	Long: `Sign in to a running server as a student and print the scores of every
quiz they have submitted.`,
	Example: `  learnhub-cli scores --email student@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if scoresEmail == "" || scoresPassword == "" {
			return errors.New("--email and --password are required")
		}
		client := quizzes.NewClient(serverURL)
		if err := client.Login(cmd.Context(), scoresEmail, scoresPassword); err != nil {
			return err
		}
		scores, err := client.Scores(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(scores) == 0 {
			fmt.Fprintln(out, quizzes.MsgNoScores)
			return nil
		}
		rows := make([][]string, 0, len(scores))
		for _, s := range scores {
			rows = append(rows, []string{s.Title, strconv.Itoa(s.Score), s.Result})
		}
		fmt.Fprintln(out, renderTable([]string{"Quiz", "Points", "Result"}, rows))
		return nil
	},
}

func init() {
	scoresCmd.Flags().StringVar(&scoresEmail, "email", "", "Email address to sign in with")
	scoresCmd.Flags().StringVar(&scoresPassword, "password", "", "Password to sign in with")
	rootCmd.AddCommand(scoresCmd)
}
