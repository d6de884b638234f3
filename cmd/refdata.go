package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/taxrisk-cli/internal/refdata"
)

var refdataCmd = &cobra.Command{
	Use:   "refdata",
	Short: "Inspect reference data (sector averages, rates)",
}

var refdataShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active reference data snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEngine(cmd.Context(), "", false)
		if err != nil {
			return err
		}
		snap := env.RefCache.Snapshot()

		fmt.Printf("Version:    %s\n", snap.Version)
		fmt.Printf("Updated at: %s\n", snap.UpdatedAt.Format("2006-01-02"))
		fmt.Printf("VAT rate:   %.0f%%\n", snap.Rates.VATStandardPct)
		fmt.Printf("Late interest: %.2f%% p.a.\n\n", snap.Rates.LateInterestAnnualPct)

		codes := make([]string, 0, len(snap.Sectors))
		for code := range snap.Sectors {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SECTOR\tNAME\tPROFIT MARGIN %\tINVENTORY/SALES\tAVG WAGE")
		for _, code := range codes {
			p := snap.Sectors[code]
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%.2f\t%.0f\n",
				p.Code, p.Name, p.AvgProfitMarginPct, p.AvgInventoryToSales, p.AvgMonthlyWage)
		}
		w.Flush()
		return nil
	},
}

var refdataCheckCmd = &cobra.Command{
	Use:   "check <file.yaml>",
	Short: "Validate a reference data file without activating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := &refdata.FileProvider{Path: args[0]}
		snap, err := provider.Load(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("OK: version %s, %d sectors, updated %s\n",
			snap.Version, len(snap.Sectors), snap.UpdatedAt.Format("2006-01-02"))
		return nil
	},
}

func init() {
	refdataCmd.AddCommand(refdataShowCmd)
	refdataCmd.AddCommand(refdataCheckCmd)
	rootCmd.AddCommand(refdataCmd)
}
