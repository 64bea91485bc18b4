package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aidMatch/business/recommendation"
	"aidMatch/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a scenario through the engine and report what it learned",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("scenario", "s", "scenario.yaml", "scenario file")
	runCmd.Flags().IntP("rounds", "n", 500, "number of recommend/feedback rounds")
	runCmd.Flags().IntP("top-k", "k", recommendation.DefaultTopK, "recommendations per round")
	runCmd.Flags().Bool("use-bandit", true, "let the bandit re-rank the head of the list")
	runCmd.Flags().String("variant", "A", "A/B variant to apply before the first round")
	runCmd.Flags().Int64("seed", 42, "random seed")
	runCmd.Flags().Float64("epsilon", 0.1, "initial exploration rate")
	runCmd.Flags().Float64("epsilon-decay", 0.995, "exploration decay per feedback event")
	runCmd.Flags().Float64("min-epsilon", 0.01, "exploration floor")
	runCmd.Flags().Float64("cold-start-bonus", 0.1, "bonus for resources with little history")

	for _, name := range []string{"scenario", "rounds", "top-k", "use-bandit", "variant", "seed", "epsilon", "epsilon-decay", "min-epsilon", "cold-start-bonus"} {
		_ = viper.BindPFlag(name, runCmd.Flags().Lookup(name))
	}
}

func engineConfigFromViper() recommendation.Config {
	cfg := recommendation.DefaultConfig()
	cfg.Bandit.InitialEpsilon = viper.GetFloat64("epsilon")
	cfg.Bandit.EpsilonDecay = viper.GetFloat64("epsilon-decay")
	cfg.Bandit.MinEpsilon = viper.GetFloat64("min-epsilon")
	cfg.Scoring.ColdStartBonus = viper.GetFloat64("cold-start-bonus")
	return cfg
}

func run(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	scenario, err := LoadScenario(viper.GetString("scenario"))
	if err != nil {
		return err
	}

	engineCfg := engineConfigFromViper()
	if err := engineCfg.Validate(); err != nil {
		return fmt.Errorf("invalid engine settings: %w", err)
	}

	logger.Info("starting simulation",
		"scenario", scenario.Name,
		"rounds", viper.GetInt("rounds"),
		"seed", viper.GetInt64("seed"),
	)

	report, err := Simulate(ctx, scenario, SimulationOptions{
		Rounds:       viper.GetInt("rounds"),
		TopK:         viper.GetInt("top-k"),
		UseBandit:    viper.GetBool("use-bandit"),
		Variant:      viper.GetString("variant"),
		Seed:         viper.GetInt64("seed"),
		EngineConfig: engineCfg,
	})
	if err != nil {
		return err
	}

	return printReport(out, report)
}

func printReport(out io.Writer, r *Report) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "scenario\t%s\n", r.Scenario)
	fmt.Fprintf(w, "rounds\t%d\n", r.Rounds)
	fmt.Fprintf(w, "total reward\t%.1f\n", r.TotalReward)
	fmt.Fprintf(w, "final epsilon\t%.4f\n", r.Statistics.Epsilon)
	fmt.Fprintf(w, "variant\t%s\n\n", r.Statistics.ABTestVariant)

	fmt.Fprintln(w, "resource\tplaced\tsucceeded")
	for _, id := range r.RankedPicks() {
		fmt.Fprintf(w, "%s\t%d\t%d\n", id, r.Picks[id], r.Successes[id])
	}

	fmt.Fprintln(w, "\nround\tepsilon")
	for _, p := range r.Epsilon {
		fmt.Fprintf(w, "%d\t%.4f\n", p.Round, p.Epsilon)
	}

	fmt.Fprintln(w, "\ntype\tinteractions\tresources\tavg reward")
	for t, s := range r.Statistics.BanditStats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\n", t, s.TotalInteractions, s.UniqueResources, s.AvgReward)
	}

	return w.Flush()
}
