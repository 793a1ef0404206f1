package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordwhizkids/wordwhiz/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List student profiles",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-10s  %-10s  %-4s  %-8s  %s\n", "ID", "Name", "", "Color", "PIN")
		fmt.Println(strings.Repeat("─", 46))
		for _, s := range roster.All() {
			pin := "no"
			if s.RequiresPIN() {
				pin = "yes"
			}
			name := s.Name
			if s.IsTeacher() {
				name += "*"
			}
			fmt.Printf("%-10s  %-10s  %-4s  %-8s  %s\n", s.ID, name, s.Icon, s.Color, pin)
		}
		fmt.Println("\n* sees the teacher curriculum")
	},
}
