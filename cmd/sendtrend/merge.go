package sendtrend

import (
	"fmt"
	"os"

	"github.com/alb0rt/send-trend/db"
	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge two session logs into one",
	Long:  `Given two log files, create a third one holding the union of both, e.g. after tracking on two machines.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if len(filenames) < 2 {
			return fmt.Errorf("expected at least 2 input files, got %d", len(filenames))
		}

		inputs := make([]*db.SQLiteStorage, len(filenames))

		for i, fn := range filenames {
			store, err := db.ConnectDB(fn)
			if err != nil {
				return fmt.Errorf("could not open %s as sqlite file: %w", fn, err)
			}
			defer store.Close()

			inputs[i] = store
		}

		if _, err := os.Stat(storagePath); err == nil {
			return fmt.Errorf("output file %s already exists", storagePath)
		}

		output, err := db.ConnectDB(storagePath)
		if err != nil {
			return err
		}
		defer output.Close()

		return db.Merge(inputs, output)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringSliceVarP(
		&filenames,
		"file",
		"f",
		[]string{},
		"List of filenames to merge data from",
	)

	mergeCmd.Flags().StringVarP(
		&storagePath,
		"out",
		"o",
		"./merged.sqlite",
		"Output path for the merged log")
}
