package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search the reference catalog by keywords",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if catalogPath == "" {
			fatal("--catalog is required for search")
		}
		runner, err := newRunner()
		if err != nil {
			fatal("%v", err)
		}

		query := strings.Join(args, " ")
		hits := runner.Index().SearchByKeyword(query, searchLimit)
		if len(hits) == 0 {
			fmt.Printf("No catalog entries match %q.\n", query)
			return
		}
		for i, e := range hits {
			fmt.Printf("%2d. %-12s %s", i+1, e.Code, e.Description)
			if e.Unit != "" {
				fmt.Printf(" (%s)", e.Unit)
			}
			fmt.Println()
		}
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum results to show")
	rootCmd.AddCommand(searchCmd)
}
