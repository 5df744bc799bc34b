package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/EatTrue/internal/bootstrap"
	"github.com/turtacn/EatTrue/internal/domain/substance"
	"github.com/turtacn/EatTrue/pkg/errors"
)

func newSubstancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "substances",
		Aliases: []string{"substance"},
		Short:   "Browse the substance catalog",
	}
	cmd.AddCommand(newSubstancesListCmd(), newSubstancesShowCmd())
	return cmd
}

func newSubstancesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every catalog substance in declared order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc, err := cc.Service(cmd.Context())
			if err != nil {
				return err
			}
			return PrintResult(cmd, substanceList(svc.ListSubstances(cmd.Context())))
		},
	}
}

func newSubstancesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one substance by id, e.g. e102",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc, err := cc.Service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := svc.GetSubstance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, substanceView{rec})
		},
	}
}

type substanceList []substance.Record

func (l substanceList) TableHeaders() []string {
	return []string{"ID", "E-NUMBER", "NAME", "SEVERITY"}
}

func (l substanceList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		rows = append(rows, []string{r.ID, r.ENumber, r.Name, strconv.FormatFloat(r.SeverityScore, 'f', -1, 64)})
	}
	return rows
}

type substanceView struct {
	*substance.Record
}

func (v substanceView) RenderText(w io.Writer) {
	fmt.Fprintf(w, "%s (%s)\n", v.Name, v.ID)
	if v.ENumber != "" {
		fmt.Fprintf(w, "E number:    %s\n", v.ENumber)
	}
	fmt.Fprintf(w, "Severity:    %s\n", strconv.FormatFloat(v.SeverityScore, 'f', -1, 64))
	fmt.Fprintf(w, "ADI:         %s\n", v.FormattedADI())
	if len(v.Aliases) > 0 {
		fmt.Fprintf(w, "Aliases:     %s\n", strings.Join(v.Aliases, ", "))
	}

	if len(v.RegulatoryStatus) > 0 {
		regions := make([]string, 0, len(v.RegulatoryStatus))
		for j := range v.RegulatoryStatus {
			regions = append(regions, string(j))
		}
		sort.Strings(regions)
		fmt.Fprintln(w, "Regulatory status:")
		for _, j := range regions {
			fmt.Fprintf(w, "  %-6s %s\n", j, v.RegulatoryStatus[substance.Jurisdiction(j)])
		}
	}
	if v.UpcomingBan != nil {
		fmt.Fprintf(w, "Upcoming ban: %s on %s: %s\n", v.UpcomingBan.Region, v.UpcomingBan.Date, v.UpcomingBan.Description)
	}
	if len(v.VulnerablePopulations) > 0 {
		fmt.Fprintf(w, "Vulnerable:  %s\n", strings.Join(v.VulnerablePopulations, ", "))
	}
	if v.MechanismOfHarm != "" {
		fmt.Fprintf(w, "Mechanism:   %s\n", v.MechanismOfHarm)
	}
	if len(v.CommonlyFoundIn) > 0 {
		fmt.Fprintf(w, "Found in:    %s\n", strings.Join(v.CommonlyFoundIn, ", "))
	}
	for _, c := range v.Citations {
		fmt.Fprintf(w, "  [cite] %s\n", c)
	}
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain substance catalog files",
	}
	cmd.AddCommand(newCatalogValidateCmd())
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	var (
		path   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file for integrity errors",
		Long: "Load a catalog (the configured one, or --catalog), check every record and\n" +
			"generic term, and list generic terms that point at missing substances.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			catalogCfg := cc.Config.Catalog
			if cmd.Flags().Changed("catalog") {
				catalogCfg.Path = path
			}
			path = catalogCfg.Path

			catalog, err := bootstrap.LoadCatalog(cmd.Context(), catalogCfg, cc.Logger)
			if err != nil {
				return err
			}

			report := catalogReport{
				Source:         path,
				Substances:     catalog.Len(),
				GenericTerms:   len(catalog.GenericTerms()),
				MissingTargets: catalog.MissingGenericTargets(),
			}
			if report.Source == "" {
				report.Source = "builtin"
			}
			if err := PrintResult(cmd, report); err != nil {
				return err
			}
			if strict && len(report.MissingTargets) > 0 {
				return errors.New(errors.CodeDataIntegrity, "generic terms reference unknown substances").
					WithDetail(fmt.Sprintf("missing=%d", len(report.MissingTargets)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "catalog file (.yaml, .yml or .json) or s3://bucket/key; empty checks the built-in catalog")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a generic term points at a missing substance")
	return cmd
}

type catalogReport struct {
	Source         string   `json:"source"`
	Substances     int      `json:"substances"`
	GenericTerms   int      `json:"generic_terms"`
	MissingTargets []string `json:"missing_targets"`
}

func (r catalogReport) RenderText(w io.Writer) {
	fmt.Fprintf(w, "OK: %s: %d substances, %d generic terms\n", r.Source, r.Substances, r.GenericTerms)
	for _, m := range r.MissingTargets {
		fmt.Fprintf(w, "warning: generic term target missing: %s\n", m)
	}
}

//Personal.AI order the ending
