package shell

import (
	"errors"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/shodojo/tegaki/sheet"
)

func sheetCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "sheet",
		Help: "export a practice sheet PDF, usage: sheet [--guides] [--cols N] [--rows N] <character> <output.pdf>",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("sheet", flag.ContinueOnError)
			var (
				guides bool
				cols   int
				rows   int
			)
			flagSet.BoolVar(&guides, "guides", false, "draw faint stroke guides in every cell")
			flagSet.IntVar(&cols, "cols", 0, "practice cell columns")
			flagSet.IntVar(&rows, "rows", 0, "practice cell rows")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()

			if len(args) < 2 {
				c.Err(errors.New("usage: sheet [options] <character> <output.pdf>"))
				return
			}

			g, err := ctx.Library.Glyph(args[0])
			if err != nil {
				c.Err(err)
				return
			}

			gen := sheet.NewGenerator(g, args[1], sheet.Options{
				Columns: cols,
				Rows:    rows,
				Guides:  guides,
				Title:   true,
			})
			if err := gen.Generate(); err != nil {
				c.Err(err)
				return
			}

			c.Println("wrote", args[1])
		},
	}
}
