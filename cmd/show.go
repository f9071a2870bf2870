package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the heat map for the given candidates and exit",
	Example: `  skill-heatmap show --select 1,4 --threshold "Creating Wireframes=3"
  skill-heatmap show -s 2 --hide-skill "Optimizing Touch Points" --scores`,
	Run: func(cmd *cobra.Command, _ []string) {
		show(cmd)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringSliceP("select", "s", nil, "candidate ids to compare, in column order")
	showCmd.Flags().StringSlice("hide-skill", nil, "skills to leave out of the heat map")
	showCmd.Flags().StringArrayP("threshold", "t", nil, "minimum score as \"Skill=value\", repeatable")
	showCmd.Flags().Bool("scores", false, "print the numeric score inside every cell")
	showCmd.Flags().Bool("list", false, "only list the candidates")
}

func show(cmd *cobra.Command) {
	ctx := cmd.Context()
	env := prepare(cmd.Name())
	logger := env.logger

	thresholds, _ := cmd.Flags().GetStringArray("threshold")
	b, err := env.board(ctx, thresholds...)
	if err != nil {
		logger.Fatal("preparing the board", zap.Error(err))
	}
	defer b.Close()

	// the error is already logged and an empty roster still renders
	_ = b.Load(ctx)

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, c := range b.Roster() {
			fmt.Printf("%s\t%s\n", c.ID, c.Name)
		}
		return
	}

	ids, _ := cmd.Flags().GetStringSlice("select")
	for _, id := range ids {
		if _, err := b.ToggleSelect(id); err != nil {
			logger.Fatal("selecting a candidate", zap.Error(err))
		}
	}

	hidden, _ := cmd.Flags().GetStringSlice("hide-skill")
	for _, skill := range hidden {
		if _, err := b.ToggleSkillVisibility(skill); err != nil {
			logger.Fatal("hiding a skill", zap.Error(err))
		}
	}

	b.Wait()

	view, err := b.Snapshot(ctx)
	if err != nil {
		logger.Fatal("building the heat map", zap.Error(err))
	}

	scores, _ := cmd.Flags().GetBool("scores")
	fmt.Print(render.Terminal(view, render.Options{Scores: scores}))
}
