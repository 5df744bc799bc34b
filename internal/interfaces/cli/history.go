package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/EatTrue/internal/domain/risk"
)

func newHistoryCmd() *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a user's recent overall scores, oldest first",
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
			h, err := svc.GetHistory(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			return PrintResult(cmd, historyView(h))
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", defaultUserID, "user id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent n entries (0 for all)")
	return cmd
}

type historyView risk.History

func (h historyView) TableHeaders() []string {
	return []string{"DATE", "SCORE", "BADGE"}
}

func (h historyView) TableRows() [][]string {
	rows := make([][]string, 0, len(h))
	for _, e := range h {
		rows = append(rows, []string{
			e.Date.UTC().Format("2006-01-02 15:04"),
			strconv.Itoa(e.OverallScore),
			string(risk.BadgeFor(e.OverallScore)),
		})
	}
	return rows
}

func (h historyView) RenderText(w io.Writer) {
	if len(h) == 0 {
		fmt.Fprintln(w, "No scans recorded.")
		return
	}
	fmt.Fprint(w, FormatTable(h.TableHeaders(), h.TableRows()))
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change a user's health profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileSetCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile used for scoring",
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
			p, err := svc.GetProfile(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return PrintResult(cmd, profileView{p})
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", defaultUserID, "user id")
	return cmd
}

func newProfileSetCmd() *cobra.Command {
	var (
		userID  string
		profile profileFlags
	)

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Change profile fields; unset flags keep their stored value",
		Example: `  eattrue profile set --age 8 --diet "vegan, gluten_free"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc, err := cc.Service(cmd.Context())
			if err != nil {
				return err
			}

			u := profile.update(cmd)
			if u == nil {
				p, err := svc.GetProfile(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return PrintResult(cmd, profileView{p})
			}
			p, err := svc.UpdateProfile(cmd.Context(), userID, u)
			if err != nil {
				return err
			}
			return PrintResult(cmd, profileView{p})
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", defaultUserID, "user id")
	profile.register(cmd)
	return cmd
}

type profileView struct {
	*risk.Profile
}

func (v profileView) RenderText(w io.Writer) {
	diet := "none"
	if len(v.DietaryPreferences) > 0 {
		diet = strings.Join(v.DietaryPreferences, ", ")
	}
	fmt.Fprintf(w, "Age:        %d\n", v.Age)
	fmt.Fprintf(w, "Diet:       %s\n", diet)
	fmt.Fprintf(w, "Pregnancy:  %s\n", v.PregnancyStatus)
}

//Personal.AI order the ending
