package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/EatTrue/internal/application/scanning"
	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// profileFlags are the per-scan profile overrides shared by analyze and
// profile set. Only flags the user actually passed are applied.
type profileFlags struct {
	age      int
	diet     string
	pregnant bool
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.age, "age", risk.DefaultAge, "age in years")
	cmd.Flags().StringVar(&p.diet, "diet", "", "comma-separated dietary preferences, e.g. \"vegan,diabetic\"")
	cmd.Flags().BoolVar(&p.pregnant, "pregnant", false, "pregnancy status")
}

// update builds a ProfileUpdate from the changed flags, or nil when none were
// passed.
func (p *profileFlags) update(cmd *cobra.Command) *scanning.ProfileUpdate {
	u := &scanning.ProfileUpdate{}
	changed := false
	if cmd.Flags().Changed("age") {
		age := p.age
		u.Age = &age
		changed = true
	}
	if cmd.Flags().Changed("diet") {
		diet := p.diet
		u.DietaryPreferences = &diet
		changed = true
	}
	if cmd.Flags().Changed("pregnant") {
		status := string(risk.NotPregnant)
		if p.pregnant {
			status = string(risk.Pregnant)
		}
		u.PregnancyStatus = &status
		changed = true
	}
	if !changed {
		return nil
	}
	return u
}

func newAnalyzeCmd() *cobra.Command {
	var (
		file        string
		source      string
		productName string
		batchCode   string
		userID      string
		profile     profileFlags
	)

	cmd := &cobra.Command{
		Use:   "analyze [ingredients...]",
		Short: "Score an ingredient list",
		Long: "Score an ingredient list read from the arguments, a file or stdin (\"-\").\n" +
			"Each argument is one ingredient; a single argument may itself be a\n" +
			"comma-separated list. Profile flags are saved for the user before scoring.",
		Example: `  eattrue analyze "sugar, e102, water, e621"
  eattrue analyze --file label.txt --age 8
  cat label.txt | eattrue analyze - --source image`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			text, err := readIngredients(cmd, args, file)
			if err != nil {
				return err
			}
			svc, err := cc.Service(cmd.Context())
			if err != nil {
				return err
			}

			if u := profile.update(cmd); u != nil {
				if _, err := svc.UpdateProfile(cmd.Context(), userID, u); err != nil {
					return err
				}
			}

			res, err := svc.AnalyzeText(cmd.Context(), &scanning.TextRequest{
				UserID:      userID,
				Text:        text,
				ProductName: productName,
				Source:      source,
				BatchCode:   batchCode,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, resultView{res})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read ingredients from a file (\"-\" for stdin)")
	cmd.Flags().StringVar(&source, "source", string(scan.SourceManual), "how the text was obtained (manual, image, live_camera)")
	cmd.Flags().StringVar(&productName, "product", "", "product name")
	cmd.Flags().StringVar(&batchCode, "batch", "", "batch code printed on the package")
	cmd.Flags().StringVarP(&userID, "user", "u", defaultUserID, "user whose profile and history apply")
	profile.register(cmd)

	return cmd
}

func newBarcodeCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "barcode <code>",
		Short: "Score a product by its barcode",
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
			res, err := svc.AnalyzeBarcode(cmd.Context(), &scanning.BarcodeRequest{UserID: userID, Barcode: args[0]})
			if err != nil {
				return err
			}
			return PrintResult(cmd, resultView{res})
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", defaultUserID, "user whose profile and history apply")
	return cmd
}

// readIngredients returns the ingredient text from --file, stdin or the
// arguments. No input at all yields "", which the service rejects.
func readIngredients(cmd *cobra.Command, args []string, file string) (string, error) {
	var r io.Reader
	switch {
	case file == "-":
		r = cmd.InOrStdin()
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, errors.CodeInvalidParam, "failed to read ingredients file").WithDetail("file=" + file)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		r = cmd.InOrStdin()
	default:
		return strings.Join(args, ", "), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidParam, "failed to read ingredients from stdin")
	}
	return string(data), nil
}

// resultView renders a scan result.
type resultView struct {
	*scan.Result
}

func (v resultView) RenderText(w io.Writer) {
	a := v.Analysis
	fmt.Fprintf(w, "Product:     %s\n", v.ProductName)
	fmt.Fprintf(w, "Source:      %s\n", v.Source)
	if v.BatchCode != "" {
		fmt.Fprintf(w, "Batch:       %s\n", v.BatchCode)
	}
	fmt.Fprintf(w, "Overall:     %d (%s), trend %s\n", a.OverallScore, a.Badge, a.Trend)
	fmt.Fprintf(w, "Clean:       %d\n", a.CleanScore)
	fmt.Fprintf(w, "Packaging:   %d\n", a.PackagingScore)
	fmt.Fprintf(w, "Regulatory:  %d\n", a.RegulatoryScore)
	fmt.Fprintf(w, "Temporal:    %d\n", a.TemporalScore)
	fmt.Fprintf(w, "Breakdown:   safe %d%%, caution %d%%, risk %d%%\n",
		a.Breakdown.Safe, a.Breakdown.Caution, a.Breakdown.Risk)

	if len(a.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range a.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	if len(a.Findings) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(a.Findings))
		for _, f := range a.Findings {
			rows = append(rows, []string{
				f.Token,
				f.Name,
				f.MatchTier,
				strconv.FormatFloat(f.SeverityScore, 'f', -1, 64),
			})
		}
		fmt.Fprint(w, FormatTable([]string{"INGREDIENT", "SUBSTANCE", "MATCH", "SEVERITY"}, rows))
	}

	if len(v.Alternatives) > 0 {
		fmt.Fprintln(w, "\nHealthier alternatives:")
		for _, alt := range v.Alternatives {
			fmt.Fprintf(w, "  - %s (score %d)\n", alt.Name, alt.Score)
		}
	}
}

// TableHeaders and TableRows list the findings.
func (v resultView) TableHeaders() []string {
	return []string{"INGREDIENT", "SUBSTANCE", "MATCH", "SEVERITY", "VULNERABLE"}
}

func (v resultView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Analysis.Findings))
	for _, f := range v.Analysis.Findings {
		rows = append(rows, []string{
			f.Token,
			f.Name,
			f.MatchTier,
			strconv.FormatFloat(f.SeverityScore, 'f', -1, 64),
			strconv.FormatBool(f.Vulnerable),
		})
	}
	return rows
}

//Personal.AI order the ending
