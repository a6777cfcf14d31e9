package featcmp

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// CommandInfo holds the path and description of a command for display.
type CommandInfo struct {
	Path        string
	Description string
}

var commandListHeading = color.New(color.Bold).SprintFunc()

// ListCommands prints the command tree with descriptions aligned in a
// second column.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, c := range commands {
		if len(c.Path) > width {
			width = len(c.Path)
		}
	}

	fmt.Fprintln(out, commandListHeading("featcmp commands:"))
	for _, c := range commands {
		pad := strings.Repeat(" ", width-len(c.Path)+2)
		fmt.Fprintf(out, "  %s%s%s\n", c.Path, pad, c.Description)
	}
}
