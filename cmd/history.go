package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := st.EventRepo().RecentSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tDURATION\tSECONDS\tA\tB\tA+B")
		for _, s := range sessions {
			if !s.Completed() {
				fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\n", s.StartedAt.Format("2006-01-02 15:04:05"))
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
				s.StartedAt.Format("2006-01-02 15:04:05"), s.Duration, s.Seconds, s.A, s.B, s.APlusB)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show (0 for all)")
}
