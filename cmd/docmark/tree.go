package main

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <input>",
	Short: "Dump the parsed document tree for debugging",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, _, err := parseInput(args[0])
		if err != nil {
			return err
		}
		pp.Println(doc)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
