package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fennor/taper/internal/fiscal"
)

var (
	fiscalRate    float64
	fiscalSurplus float64
	fiscalGrowth  float64

	fiscalHistoryLimit int
)

var fiscalCmd = &cobra.Command{
	Use:   "fiscal",
	Short: "Compute the target debt-to-GDP ratio",
	Long:  "Computes the debt-to-GDP ratio at which the primary surplus exactly stabilizes the debt. Rates are fractions: 0.33 means 33%.",
	RunE:  runFiscal,
}

var fiscalHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent fiscal evaluations",
	RunE:  runFiscalHistory,
}

func init() {
	fiscalCmd.Flags().Float64Var(&fiscalRate, "rate", 0.33, "interest rate on the debt")
	fiscalCmd.Flags().Float64Var(&fiscalSurplus, "surplus", -3.88, "primary surplus (negative for deficit)")
	fiscalCmd.Flags().Float64Var(&fiscalGrowth, "growth", 0, "GDP growth rate")
	fiscalCmd.AddCommand(fiscalHistoryCmd)

	fiscalHistoryCmd.Flags().IntVar(&fiscalHistoryLimit, "limit", 10, "maximum evaluations to list")
}

func runFiscal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	growth := fiscalGrowth
	if !cmd.Flags().Changed("growth") {
		growth = cfg.Fiscal.GrowthRate
	}

	in := fiscal.Inputs{
		InterestRate:   fiscalRate,
		PrimarySurplus: fiscalSurplus,
		GDPGrowthRate:  growth,
	}
	ratio, err := fiscal.TargetDebtToGDP(in)

	// Record the evaluation, best-effort
	if db, dbErr := openDB(cfg); dbErr == nil {
		var rp *float64
		note := ""
		if err != nil {
			note = err.Error()
		} else {
			rp = &ratio
		}
		db.AddFiscalEval(in.InterestRate, in.PrimarySurplus, in.GDPGrowthRate, rp, note)
		db.Close()
	}

	if err != nil {
		var ue *fiscal.UnsustainableError
		if errors.As(err, &ue) {
			fmt.Println(ue.Error())
			return nil
		}
		return err
	}

	fmt.Printf("%g\n", ratio)
	return nil
}

func runFiscalHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	evals, err := db.RecentFiscalEvals(fiscalHistoryLimit)
	if err != nil {
		return err
	}
	if len(evals) == 0 {
		fmt.Println("No fiscal evaluations recorded.")
		return nil
	}

	for _, e := range evals {
		created := time.UnixMilli(e.CreatedAt).Format("2006-01-02 15:04")
		if e.Ratio != nil {
			fmt.Printf("%s  rate %g  surplus %g  growth %g  ratio %g\n",
				created, e.InterestRate, e.PrimarySurplus, e.GrowthRate, *e.Ratio)
		} else {
			fmt.Printf("%s  rate %g  surplus %g  growth %g  unsustainable\n",
				created, e.InterestRate, e.PrimarySurplus, e.GrowthRate)
		}
	}
	return nil
}
