package cmd

import (
	"fmt"

	"github.com/nfrund/learnhub/internal/config"
	"github.com/nfrund/learnhub/internal/seed"
	"github.com/nfrund/learnhub/internal/server"
	"github.com/nfrund/learnhub/internal/storage"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo course",
	Long: `Create the demo course with its modules, lessons and quizzes in the
configured store, and the directories its videos and textbooks are read from.

Running it again is safe: an existing course with the same name is left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		store, err := server.OpenStore(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		course, created, err := seed.Seed(cmd.Context(), store, storage.NewDiskStore(cfg.GetAssetsDir()))
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Created course %q (%s)\n", course.Name, course.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Course %q already exists (%s)\n", course.Name, course.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
