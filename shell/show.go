package shell

import (
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/shodojo/tegaki/visualize"
)

func showCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "show",
		Help: "show a glyph, usage: show [--png <file>] <character>",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("show", flag.ContinueOnError)
			var pngOut string
			flagSet.StringVar(&pngOut, "png", "", "also render the reference strokes to a PNG file")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()

			if len(args) == 0 {
				c.Err(errors.New("missing character"))
				return
			}

			g, err := ctx.Library.Glyph(args[0])
			if err != nil {
				c.Err(err)
				return
			}

			c.Printf("character: %s\n", g.Character)
			if g.Meaning != "" {
				c.Printf("meaning:   %s\n", g.Meaning)
			}
			c.Printf("strokes:   %d\n", len(g.Strokes))
			for i, s := range g.Strokes {
				c.Printf("  %2d: %d point(s), (%.0f,%.0f) -> (%.0f,%.0f)\n",
					i+1, len(s), s[0].X, s[0].Y, s[len(s)-1].X, s[len(s)-1].Y)
			}

			if pngOut != "" {
				img := visualize.Glyph(g, visualize.DefaultSize)
				if err := visualize.WritePNG(pngOut, img); err != nil {
					c.Err(fmt.Errorf("writing %s: %w", pngOut, err))
					return
				}
				c.Println("wrote", pngOut)
			}
		},
	}
}
