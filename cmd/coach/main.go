// Package main is the entry point for the coach CLI, which runs the
// tactical engine in-process and prints advice tables for a match.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	app "github.com/pitchlab/gaffer/internal/app"
	"github.com/pitchlab/gaffer/internal/domain/sim"
	"github.com/pitchlab/gaffer/internal/domain/stats"
	"github.com/pitchlab/gaffer/pkg/logger"
)

var (
	eventsPath string
	rosterPath string
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Match tactical advisor",
	Long:  "Fit the shot model on a match feed and print tactical advice for teams and players. With no feed flags the engine runs on a generated fixture match.",
}

var insightsCmd = &cobra.Command{
	Use:   "insights <minute>",
	Short: "Team advice and rolling stats for one minute",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsights,
}

var adviceCmd = &cobra.Command{
	Use:   "advice <player>",
	Short: "Positioning advice for one player",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdvice,
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Simulated player positions after a number of ticks",
	RunE:  runPositions,
}

var ticks int

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&eventsPath, "events", "", "path to the match events JSON export")
	rootCmd.PersistentFlags().StringVar(&rosterPath, "roster", "", "path to the roster JSON export")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "seed for simulation and phrasing")

	adviceCmd.Flags().IntVar(&ticks, "ticks", 1, "simulator ticks to run before advising")
	positionsCmd.Flags().IntVar(&ticks, "ticks", 10, "simulator ticks to run")

	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(adviceCmd)
	rootCmd.AddCommand(positionsCmd)
}

// startEngine builds and starts a service from the CLI flags.
func startEngine(ctx context.Context) (*app.Service, error) {
	if err := logger.Init(); err != nil {
		return nil, err
	}
	_ = logger.SetLevelString("warn")

	svc := app.New(
		app.WithFeedPaths(eventsPath, rosterPath),
		app.WithSeed(seed),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	minute, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid minute %q: %w", args[0], err)
	}

	ctx := cmd.Context()
	svc, err := startEngine(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	var snaps []stats.Snapshot
	for _, team := range svc.Teams() {
		advice, err := svc.TeamAdvice(ctx, team, minute)
		if err != nil {
			return err
		}
		snaps = append(snaps, advice.Stats)
		fmt.Fprintf(os.Stdout, "\n[%s] %s (rule: %s)\n", team, advice.Suggestion, advice.Rule)
	}

	fmt.Fprintln(os.Stdout)
	printSnapshotTable(snaps)
	return nil
}

func runAdvice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := startEngine(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	if _, err := svc.Tick(ctx, ticks); err != nil {
		return err
	}
	advice, err := svc.PlayerAdvice(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%s (tick %d, rule %s)\n", args[0], advice.Tick, advice.Rule)
	fmt.Fprintf(os.Stdout, "position (%.1f, %.1f) -> optimal (%.1f, %.1f)\n",
		advice.CurrentPoint.X, advice.CurrentPoint.Y, advice.OptimalPoint.X, advice.OptimalPoint.Y)
	fmt.Fprintln(os.Stdout, advice.Suggestion)
	return nil
}

func runPositions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := startEngine(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop()

	if _, err := svc.Tick(ctx, ticks); err != nil {
		return err
	}
	states, err := svc.Positions(ctx)
	if err != nil {
		return err
	}

	printPositionsTable(states)
	return nil
}

func printSnapshotTable(snaps []stats.Snapshot) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("TEAM", "XG", "XG_AGAINST", "DIFF", "POSS%", "PASS%", "PRESS", "SHOTS", "RECENT_XG", "DUEL%")
	for _, s := range snaps {
		table.Append(
			s.Team,
			fmt.Sprintf("%.2f", s.OffensiveXG),
			fmt.Sprintf("%.2f", s.DefensiveXG),
			fmt.Sprintf("%+.2f", s.XGDifferential),
			fmt.Sprintf("%.1f", s.PossessionPct),
			fmt.Sprintf("%.1f", s.PassSuccessPct),
			strconv.Itoa(s.PressureCount),
			strconv.Itoa(s.ShotCount),
			fmt.Sprintf("%.2f", s.RecentXG),
			fmt.Sprintf("%.1f", s.DuelSuccessPct),
		)
	}
	table.Render()
}

func printPositionsTable(states []sim.State) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("PLAYER", "TEAM", "ROLE", "X", "Y")
	for _, st := range states {
		table.Append(
			st.Player.ID,
			st.Player.Team,
			string(st.Player.Role),
			fmt.Sprintf("%.1f", st.Position.X),
			fmt.Sprintf("%.1f", st.Position.Y),
		)
	}
	table.Render()
}
