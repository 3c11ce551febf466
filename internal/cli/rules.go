package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/pipeline"
	"github.com/ppiankov/candor/internal/render"
	"github.com/ppiankov/candor/internal/rules"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active detection rules and business types",
	Long: `Rules prints the pattern rules, suspicious keywords and business types the
analyzer would use with the current configuration, including any rules_file
or catalog_file overrides.

Example:
  candor rules
  candor rules -o json`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

type ruleListing struct {
	Groups     []groupListing `json:"groups"`
	Suspicious []string       `json:"suspicious_keywords"`
	Types      []string       `json:"business_types"`
}

type groupListing struct {
	Category string             `json:"category"`
	Rules    []rules.Definition `json:"rules"`
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	listing, err := activeRules(cfg)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	f, _ := render.ParseFormat(cfg.Output.Format)
	if f != render.FormatText {
		return r.Value(cmd.OutOrStdout(), listing)
	}
	return writeRules(cmd.OutOrStdout(), listing)
}

func activeRules(cfg *model.Config) (ruleListing, error) {
	set, err := pipeline.LoadRules(cfg.Analysis)
	if err != nil {
		return ruleListing{}, err
	}
	bm, err := pipeline.LoadBusinessModel(cfg.Analysis)
	if err != nil {
		return ruleListing{}, err
	}

	listing := ruleListing{Suspicious: set.SuspiciousList(), Types: bm.Types()}
	for _, g := range set.Groups() {
		gl := groupListing{Category: string(g.Category), Rules: make([]rules.Definition, 0, len(g.Rules))}
		for _, rule := range g.Rules {
			gl.Rules = append(gl.Rules, rules.Definition{ID: rule.ID, Pattern: rule.Pattern})
		}
		listing.Groups = append(listing.Groups, gl)
	}
	return listing, nil
}

func writeRules(w io.Writer, listing ruleListing) error {
	var b strings.Builder
	for _, g := range listing.Groups {
		fmt.Fprintf(&b, "%s (%d)\n", g.Category, len(g.Rules))
		for _, r := range g.Rules {
			fmt.Fprintf(&b, "  %-20s %s\n", r.ID, r.Pattern)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "suspicious keywords: %s\n", strings.Join(listing.Suspicious, ", "))
	fmt.Fprintf(&b, "business types:      %s\n", strings.Join(listing.Types, ", "))
	_, err := io.WriteString(w, b.String())
	return err
}
