package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/taxrisk-cli/internal/model"
	"github.com/sells-group/taxrisk-cli/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Inspect stored assessments",
}

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taxpayerRef, _ := cmd.Flags().GetString("taxpayer")
		riskLevel, _ := cmd.Flags().GetString("risk")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.ListAssessments(cmd.Context(), store.Filter{
			TaxpayerRef: taxpayerRef,
			RiskLevel:   model.RiskLevel(riskLevel),
			Limit:       limit,
		})
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No assessments found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAXPAYER\tPERIOD\tRISK\tSCORE\tASSESSED AT")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
				a.ID, a.TaxpayerRef, a.PeriodRef, a.RiskLevel, a.TotalScore,
				a.AssessedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		return nil
	},
}

var assessmentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print one stored assessment with its anomaly feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		a, feed, err := st.GetAssessment(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		payload := struct {
			*model.Assessment
			Feed []model.FeedItem `json:"feed"`
		}{a, feed}
		return eris.Wrap(enc.Encode(payload), "assessments: encode")
	},
}

func init() {
	f := assessmentsListCmd.Flags()
	f.String("taxpayer", "", "filter by taxpayer reference")
	f.String("risk", "", "filter by risk level (LOW, MEDIUM, HIGH, NO_DATA)")
	f.Int("limit", 50, "maximum number of results")

	assessmentsCmd.AddCommand(assessmentsListCmd)
	assessmentsCmd.AddCommand(assessmentsGetCmd)
	rootCmd.AddCommand(assessmentsCmd)
}
