package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/taxrisk-cli/internal/catalogue"
	"github.com/sells-group/taxrisk-cli/internal/model"
)

var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "List the criteria catalogue",
	Long: `Prints every criterion in the builtin catalogue: rule kind, category,
weight, base severity, and localized title.

Examples:
  # Full catalogue as a table
  catalogue

  # Hungarian titles, VAT criteria only
  catalogue --lang hu --category vat

  # Machine-readable dump
  catalogue --format json`,
	RunE: runCatalogue,
}

func init() {
	f := catalogueCmd.Flags()
	f.String("lang", "", "criterion text language (overrides config)")
	f.String("category", "", "filter by category")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(catalogueCmd)
}

func runCatalogue(cmd *cobra.Command, _ []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	categoryFilter, _ := cmd.Flags().GetString("category")
	format, _ := cmd.Flags().GetString("format")

	if lang == "" {
		lang = cfg.Assess.Language
	}
	if categoryFilter != "" && !model.Category(categoryFilter).Known() {
		return eris.Errorf("catalogue: unknown category %q (known: %s)",
			categoryFilter, strings.Join(categoryNames(), ", "))
	}
	if format != "table" && format != "json" {
		return eris.Errorf("catalogue: --format must be table or json (got %q)", format)
	}

	cat := catalogue.Builtin()
	var defs []catalogue.CriterionDefinition
	for _, def := range cat.Criteria {
		if categoryFilter != "" && string(def.Category) != categoryFilter {
			continue
		}
		defs = append(defs, def)
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		payload := struct {
			Version  string                          `json:"version"`
			Criteria []catalogue.CriterionDefinition `json:"criteria"`
		}{cat.Version, defs}
		return eris.Wrap(enc.Encode(payload), "catalogue: encode")
	}

	fmt.Printf("Catalogue %s, %d criteria (total weight %.0f)\n\n",
		cat.Version, len(defs), cat.TotalWeight())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tCATEGORY\tKIND\tWEIGHT\tSEVERITY\tTITLE")
	for _, def := range defs {
		text := def.Localize(lang)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.0f\t%s\t%s\n",
			def.ID, def.Code, def.Category, def.Kind, def.Weight, def.Severity.Base, text.Title)
	}
	w.Flush()
	return nil
}

func categoryNames() []string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return names
}
