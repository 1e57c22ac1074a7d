package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"buffet/internal/seed"

	"github.com/spf13/cobra"
)

func seedCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [data-file]",
		Short: "Import categories and foods from a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			path := a.cfg.SeedFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no seed file given and seed_file is not configured")
			}

			report, err := seed.Load(cmd.Context(), a.store, path, a.logger.Named("seed"))
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
}

func buffetCmd(configFile *string) *cobra.Command {
	var (
		guests   int
		foodIDs  []uint
		mode     string
		allergen string
	)

	cmd := &cobra.Command{
		Use:   "buffet",
		Short: "Compute a buffet for a number of guests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			switch mode {
			case "custom":
				return printResult(a.buffets.Compute(ctx, guests, foodIDs))
			case "recommended":
				foods, err := a.buffets.Recommend(ctx, guests)
				if err != nil {
					return err
				}
				return printResult(a.buffets.Compute(ctx, guests, foods))
			case "economical":
				return printResult(a.buffets.Economical(ctx, guests))
			case "balanced":
				return printResult(a.buffets.Balanced(ctx, guests))
			case "allergy-avoiding":
				return printResult(a.buffets.AllergyAvoiding(ctx, guests, allergen))
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}
		},
	}

	cmd.Flags().IntVarP(&guests, "guests", "g", 10, "Number of guests")
	cmd.Flags().UintSliceVar(&foodIDs, "foods", nil, "Food ids for the custom mode")
	cmd.Flags().StringVarP(&mode, "mode", "m", "recommended", "custom, recommended, economical, balanced or allergy-avoiding")
	cmd.Flags().StringVar(&allergen, "allergen", "", "Allergen to avoid")
	return cmd
}

func weekCmd(configFile *string) *cobra.Command {
	var (
		date     string
		stats    bool
		generate bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the meal plan of the week containing a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("date must use the YYYY-MM-DD format: %w", err)
				}
				day = parsed
			}

			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			switch {
			case stats:
				return printResult(a.planner.WeeklyStatistics(ctx, day))
			case generate:
				return printResult(a.planner.GenerateWeek(ctx, day))
			default:
				return printResult(a.planner.GetWeek(ctx, day))
			}
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Any date of the week, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print the week's statistics instead of its meals")
	cmd.Flags().BoolVar(&generate, "generate", false, "Ignore stored meals and generate the week")
	return cmd
}

func printResult[T any](v T, err error) error {
	if err != nil {
		return err
	}
	return printJSON(v)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
