package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/depbracket/bracket"
)

func (a *app) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the tag → phrase category table",
		Long: `Lists every part-of-speech tag with a phrase category. Tags not listed
produce brackets with an empty label ("[ word ]").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := bracket.Categories()
			tags := make([]string, 0, len(table))
			for tag := range table {
				tags = append(tags, tag)
			}
			sort.Strings(tags)

			out := cmd.OutOrStdout()
			for _, tag := range tags {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", tag, table[tag]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
