package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// snapshotInput is the JSON shape of a taxpayer snapshot file.
type snapshotInput struct {
	TaxpayerRef string         `json:"taxpayer_ref"`
	PeriodRef   string         `json:"period_ref"`
	Fields      map[string]any `json:"fields"`
}

var assessCmd = &cobra.Command{
	Use:   "assess <snapshot.json>",
	Short: "Assess a taxpayer snapshot against the criteria catalogue",
	Long: `Evaluates every catalogue criterion against the snapshot in the given
JSON file and prints the weighted risk score, per-criterion results, and
the deduplicated anomaly feed.

The snapshot file looks like:

  {
    "taxpayer_ref": "HU12345678",
    "period_ref": "2025",
    "fields": {
      "cash_balance": 1200000,
      "current_liabilities": 18000000,
      "equity": 90000,
      "related_party_receivable": 300000
    }
  }

Examples:
  # Assess and print a table
  assess snapshot.json

  # Full JSON output including evidence payloads
  assess snapshot.json --format json

  # Hungarian criterion texts, persisted to the store
  assess snapshot.json --lang hu --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.String("format", "table", "output format: table, json, or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.String("lang", "", "criterion text language (overrides config)")
	f.Bool("save", false, "persist result to the configured store")
	f.Bool("feed-only", false, "print only the anomaly feed")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	lang, _ := cmd.Flags().GetString("lang")
	save, _ := cmd.Flags().GetBool("save")
	feedOnly, _ := cmd.Flags().GetBool("feed-only")

	if format != "table" && format != "json" && format != "csv" {
		return eris.Errorf("assess: --format must be table, json, or csv (got %q)", format)
	}

	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}

	env, err := initEngine(ctx, lang, false)
	if err != nil {
		return err
	}

	assessment, err := env.Assessor.Assess(ctx, snap)
	if err != nil {
		return eris.Wrap(err, "assess: run")
	}
	feed := env.Assessor.Feed(assessment)

	if save {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveAssessment(ctx, assessment, feed); err != nil {
			return err
		}
		zap.L().Info("assessment saved",
			zap.String("id", assessment.ID),
			zap.String("taxpayer_ref", assessment.TaxpayerRef),
		)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "assess: create %s", outputPath)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return writeAssessmentJSON(out, assessment, feed, feedOnly)
	case "csv":
		return writeAssessmentCSV(out, assessment)
	default:
		if feedOnly {
			printFeed(out, feed)
			return nil
		}
		printAssessment(out, assessment, feed)
		return nil
	}
}

func loadSnapshot(path string) (*model.TaxpayerSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "assess: read %s", path)
	}
	var in snapshotInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, eris.Wrapf(err, "assess: parse %s", path)
	}
	if in.TaxpayerRef == "" {
		return nil, eris.New("assess: taxpayer_ref is required")
	}
	if in.PeriodRef == "" {
		return nil, eris.New("assess: period_ref is required")
	}
	return model.NewTaxpayerSnapshot(in.TaxpayerRef, in.PeriodRef, in.Fields), nil
}

func writeAssessmentJSON(out io.Writer, a *model.Assessment, feed []model.FeedItem, feedOnly bool) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if feedOnly {
		return eris.Wrap(enc.Encode(feed), "assess: encode feed")
	}
	payload := struct {
		*model.Assessment
		Feed []model.FeedItem `json:"feed"`
	}{a, feed}
	return eris.Wrap(enc.Encode(payload), "assess: encode result")
}

func writeAssessmentCSV(out io.Writer, a *model.Assessment) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"criterion_id", "code", "category", "status", "severity", "score", "weight", "detail"}); err != nil {
		return eris.Wrap(err, "assess: write csv header")
	}
	for _, c := range a.Criteria {
		row := []string{
			strconv.Itoa(c.CriterionID),
			c.Code,
			string(c.Category),
			string(c.Status),
			string(c.Severity),
			strconv.FormatFloat(c.Score, 'f', 2, 64),
			strconv.FormatFloat(c.Weight, 'f', -1, 64),
			c.Detail,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "assess: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "assess: flush csv")
}

func printAssessment(out io.Writer, a *model.Assessment, feed []model.FeedItem) {
	fmt.Fprintf(out, "Taxpayer %s, period %s\n", a.TaxpayerRef, a.PeriodRef)
	fmt.Fprintf(out, "Risk: %s (score %.2f/100, evaluated weight %.0f)\n", a.RiskLevel, a.TotalScore, a.MaxScore)
	fmt.Fprintf(out, "%s\n\n", a.Summary)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tCATEGORY\tSTATUS\tSEVERITY\tDETAIL")
	for _, c := range a.Criteria {
		detail := c.Detail
		if c.Status == model.StatusNoData {
			detail = c.Diagnostic
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.CriterionID, c.Code, c.Category, c.Status, c.Severity, detail)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Category scores:")
	cw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, cs := range a.Categories {
		if !cs.HasData {
			fmt.Fprintf(cw, "  %s\tno data\n", cs.Category)
			continue
		}
		fmt.Fprintf(cw, "  %s\t%.2f/100\t(weight %.0f)\n", cs.Category, cs.Score, cs.MaxScore)
	}
	cw.Flush()

	if len(feed) > 0 {
		fmt.Fprintln(out)
		printFeed(out, feed)
	}
}

func printFeed(out io.Writer, feed []model.FeedItem) {
	fmt.Fprintln(out, "Anomaly feed:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  SEVERITY\tCATEGORY\tCODE\tTITLE")
	for _, item := range feed {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", item.Severity, item.Category, item.Code, item.Title)
	}
	w.Flush()
}
