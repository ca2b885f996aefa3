package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/faqbot"
)

// Run executes the commands command.
func (c *CommandsCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMMAND\tALIASES\tDESCRIPTION")
	for _, cmd := range deps.Router.Commands() {
		var aliases []string
		for _, a := range cmd.Aliases {
			aliases = append(aliases, faqbot.CommandPrefix+a)
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", faqbot.CommandPrefix, cmd.Name, strings.Join(aliases, " "), cmd.Description)
	}
	return w.Flush()
}
