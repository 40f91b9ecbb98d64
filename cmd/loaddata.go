package cmd

import (
	"reviewdb-api/loader"

	"github.com/spf13/cobra"
)

var (
	loadDataDir   string
	loadDataFiles []string
)

var loadDataCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Populate the database from CSV files",
	Long: `loaddata imports CSV files into empty tables. Files are loaded in
dependency order (categories and genres before titles, titles before
reviews) and input is assumed referentially intact; the first bad row
aborts the whole run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, log, err := setup()
		if err != nil {
			return err
		}

		ld := loader.New(db, log)
		if len(loadDataFiles) > 0 {
			for _, path := range loadDataFiles {
				if err := ld.LoadFile(path); err != nil {
					return err
				}
			}
			return nil
		}
		return ld.LoadAll(loadDataDir)
	},
}

func init() {
	loadDataCmd.Flags().StringVarP(&loadDataDir, "dir", "d", "data", "directory containing the CSV files")
	loadDataCmd.Flags().StringSliceVarP(&loadDataFiles, "file", "f", nil, "individual files to load, in order")
	rootCmd.AddCommand(loadDataCmd)
}
