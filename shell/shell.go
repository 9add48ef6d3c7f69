// Package shell is the interactive practice client: it browses the glyph
// library, grades recorded attempts, drives progressive snap sessions and
// exports practice sheets.
package shell

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
	"github.com/shodojo/tegaki/session"
	"github.com/shodojo/tegaki/version"
)

// Lister is the optional enumeration side of a glyph provider; the
// directory store implements it, the HTTP client does not.
type Lister interface {
	List() ([]string, error)
}

// ShellCtxt carries the state shared by all shell commands.
type ShellCtxt struct {
	Library     glyph.Provider
	GradePolicy grader.Policy
	SnapPolicy  grader.Policy
	Session     *session.Session
}

func (ctx *ShellCtxt) prompt() string {
	if ctx.Session == nil {
		return "[tegaki]>"
	}
	st := ctx.Session.State()
	if st.Complete {
		return fmt.Sprintf("[%s done]>", st.Character)
	}
	return fmt.Sprintf("[%s %d/%d]>", st.Character, st.Target, st.Total)
}

// RunShell starts the interactive shell, or runs a single command
// non-interactively when args are given.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := ishell.New()

	shell.AddCmd(glyphsCmd(ctx))
	shell.AddCmd(showCmd(ctx))
	shell.AddCmd(gradeCmd(ctx))
	shell.AddCmd(practiceCmd(ctx))
	shell.AddCmd(strokeCmd(ctx))
	shell.AddCmd(statusCmd(ctx))
	shell.AddCmd(resetCmd(ctx))
	shell.AddCmd(renderCmd(ctx))
	shell.AddCmd(sheetCmd(ctx))
	shell.AddCmd(versionCmd(ctx))

	if len(args) > 0 {
		return shell.Process(args...)
	}

	shell.Println(fmt.Sprintf("tegaki %s, type 'help' for available commands", version.Version))
	shell.SetPrompt(ctx.prompt())
	shell.Run()

	return nil
}
