package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dvloznov/lda-connector/internal/jobs/objstore"
	"github.com/dvloznov/lda-connector/internal/pipeline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Prints the completed and pending partitions of every ingestion job.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		objects, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer objects.Close()

		statuses, err := pipeline.Status(cmd.Context(), objstore.NewStore(objects), cfg.Jobs())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "JOB\tCOMPLETED\tPENDING")
		for _, s := range statuses {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Job, years(s.Completed), years(s.Pending))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func years(ys []int) string {
	if len(ys) == 0 {
		return "-"
	}
	parts := make([]string, len(ys))
	for i, y := range ys {
		parts[i] = fmt.Sprint(y)
	}
	return strings.Join(parts, ",")
}
