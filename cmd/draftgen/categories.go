package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"draftgen/internal/content"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the selectable policy categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := content.New()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range resolver.Categories() {
			marker := ""
			if name == resolver.Default() {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%s%s\n", name, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
