package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/board"
	"github.com/spigell/skill-heatmap/internal/filtering"
	"github.com/spigell/skill-heatmap/internal/heatmap"
	"github.com/spigell/skill-heatmap/internal/render"
)

const (
	PromptToggleCandidate = "Select/deselect a candidate"
	PromptToggleSkill     = "Show/hide a skill"
	PromptSetThreshold    = "Set a skill threshold"
	PromptRefresh         = "Refresh scores"
	PromptQuit            = "Quit"
	PromptBack            = "back"

	markSelected   = "[x]"
	markUnselected = "[ ]"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptToggleCandidate, PromptToggleSkill, PromptSetThreshold, PromptRefresh, PromptQuit},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare candidates interactively in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		compare(cmd)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Bool("scores", false, "print the numeric score inside every cell")
}

func compare(cmd *cobra.Command) {
	ctx := cmd.Context()
	env := prepare(cmd.Name())
	logger := env.logger

	b, err := env.board(ctx)
	if err != nil {
		logger.Fatal("preparing the board", zap.Error(err))
	}
	defer b.Close()

	_ = b.Load(ctx)

	scores, _ := cmd.Flags().GetBool("scores")

	for ctx.Err() == nil {
		b.Wait()

		view, err := b.Snapshot(ctx)
		if err != nil {
			logger.Fatal("building the heat map", zap.Error(err))
		}
		fmt.Print(render.Terminal(view, render.Options{Scores: scores}))

		_, action, err := prompt.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return
		}

		if err := handleAction(ctx, action, b, view); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.Error(err))
				return
			}
			logger.Warn("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, b *board.Board, view *board.View) error {
	switch action {
	case PromptToggleCandidate:
		return toggleCandidate(b, view)
	case PromptToggleSkill:
		return toggleSkill(b, view)
	case PromptSetThreshold:
		return setThreshold(b, view)
	case PromptRefresh:
		return b.Refresh(ctx)
	case PromptQuit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func mark(on bool) string {
	if on {
		return markSelected
	}
	return markUnselected
}

func toggleCandidate(b *board.Board, view *board.View) error {
	items := make([]string, 0, len(view.Candidates)+1)
	for _, entry := range view.Candidates {
		items = append(items, fmt.Sprintf("%s %s %s", mark(entry.Selected), entry.Candidate.ID, entry.Candidate.Name))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	idx, _, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if idx == len(view.Candidates) {
		return nil
	}

	_, err = b.ToggleSelect(view.Candidates[idx].Candidate.ID)
	return err
}

func chooseSkill(view *board.View, label string, describe func(board.SkillEntry) string) (string, error) {
	items := make([]string, 0, len(view.Skills)+1)
	for _, skill := range view.Skills {
		items = append(items, describe(skill))
	}

	skillPrompt := promptui.Select{
		Label: label,
		Items: append(items, PromptBack),
		Size:  len(items) + 1,
	}

	idx, _, err := skillPrompt.Run()
	if err != nil {
		return "", err
	}
	if idx == len(view.Skills) {
		return "", nil
	}
	return view.Skills[idx].Name, nil
}

func toggleSkill(b *board.Board, view *board.View) error {
	skill, err := chooseSkill(view, "Choose a skill to show or hide", func(s board.SkillEntry) string {
		return mark(s.Visible) + " " + s.Name
	})
	if err != nil || skill == "" {
		return err
	}

	_, err = b.ToggleSkillVisibility(skill)
	return err
}

func setThreshold(b *board.Board, view *board.View) error {
	skill, err := chooseSkill(view, "Choose a skill to filter on", func(s board.SkillEntry) string {
		return fmt.Sprintf("%-28s min: %s", s.Name, s.Threshold)
	})
	if err != nil || skill == "" {
		return err
	}

	values := []string{filtering.Off.String()}
	for score := heatmap.MinScore; score <= heatmap.MaxScore; score++ {
		values = append(values, filtering.Min(score).String())
	}

	valuePrompt := promptui.Select{
		Label: fmt.Sprintf("Minimum score for %s", strings.TrimSpace(skill)),
		Items: values,
	}

	_, selected, err := valuePrompt.Run()
	if err != nil {
		return err
	}

	threshold, err := filtering.ParseThreshold(selected)
	if err != nil {
		return err
	}
	return b.SetThreshold(skill, threshold)
}
