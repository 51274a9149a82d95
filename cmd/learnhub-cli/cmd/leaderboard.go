package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nfrund/learnhub/internal/modules/leaderboard"
	"github.com/spf13/cobra"
)

var (
	leaderboardPage int
	leaderboardAll  bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print one page of the points leaderboard",
	Long: `Fetch the ranking from a running server and print one page of it.

Pages hold eight students. A page past the end shows the last page.
With --all every page is printed, starting from the first.`,
	Example: `  learnhub-cli leaderboard
  learnhub-cli leaderboard --page 2 --server http://localhost:8080
  learnhub-cli leaderboard --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		board := leaderboard.NewBoard()
		if err := board.Load(cmd.Context(), leaderboard.NewClient(serverURL, nil)); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !leaderboardAll {
			board.SetPage(leaderboardPage)
			printLeaderboardPage(out, board)
			return nil
		}
		board.SetPage(1)
		printLeaderboardPage(out, board)
		for board.NextPage() {
			printLeaderboardPage(out, board)
		}
		return nil
	},
}

func printLeaderboardPage(out io.Writer, board *leaderboard.Board) {
	rows := make([][]string, 0, leaderboard.PageSize)
	for _, r := range board.Rows() {
		rows = append(rows, []string{strconv.Itoa(r.Rank), r.Username, strconv.Itoa(r.Points)})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Student", "Points"}, rows))
	fmt.Fprintf(out, "Page %d of %d\n", board.Page(), board.Pages())
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardPage, "page", 1, "Page to print, starting at 1")
	leaderboardCmd.Flags().BoolVar(&leaderboardAll, "all", false, "Print every page")
	rootCmd.AddCommand(leaderboardCmd)
}
