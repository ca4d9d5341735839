package main

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/spf13/cobra"
)

var galleriesCmd = &cobra.Command{
	Use:   "galleries",
	Short: "List the galleries and what each one allows",
	Run: func(cmd *cobra.Command, args []string) {
		for i, g := range model.Galleries() {
			cats := make([]string, 0, len(g.Categories))
			for _, c := range g.Categories {
				cats = append(cats, string(c))
			}
			fmt.Printf("%d. %-8s %-14s reminders=%-5t images=%-5t travel=%-5t categories=%s\n",
				i+1, g.Kind, g.Name, g.SupportsReminders, g.AllowsImage, g.RequiresTravel, strings.Join(cats, ","))
		}
	},
}

func init() {
	rootCmd.AddCommand(galleriesCmd)
}
