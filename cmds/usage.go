package cmds

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	fmt.Fprintln(os.Stdout, "commands:")
	printCommands(p.commands, 1)
}

func printCommands(commands map[string]*Command, depth int) {
	// aliases map to the same *Command; print each once under its
	// sorted first name
	printed := make(map[*Command][]string)
	for name, command := range commands {
		printed[command] = append(printed[command], name)
	}

	type row struct {
		names   []string
		command *Command
	}
	var rows []row
	for command, names := range printed {
		slices.Sort(names)
		rows = append(rows, row{
			names:   names,
			command: command,
		})
	}
	slices.SortFunc(rows, func(a, b row) int {
		return strings.Compare(a.names[0], b.names[0])
	})

	indent := strings.Repeat("  ", depth)
	for _, r := range rows {
		fmt.Fprintf(os.Stdout, "%s%s", indent, strings.Join(r.names, ", "))
		if r.command.Description != "" {
			fmt.Fprintf(os.Stdout, "\t%s", r.command.Description)
		}
		fmt.Fprintln(os.Stdout)
		if len(r.command.Subs) > 0 {
			printCommands(r.command.Subs, depth+1)
		}
	}
}
