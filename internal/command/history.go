package command

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func historyCommand() *cobra.Command {
	var limit int32
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent obfuscation jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, _, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			jobs, err := store.ListJobs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tIN\tOUT\tLITERALS\tRENAMED\tREMOTE")
			for _, job := range jobs {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
					job.ID,
					job.CreatedAt.Local().Format(time.DateTime),
					job.SourceBytes,
					job.OutputBytes,
					job.Literals,
					job.Renamed,
					job.Remote,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int32VarP(&limit, "limit", "n", 20, "maximum number of jobs to list")
	return cmd
}
