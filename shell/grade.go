package shell

import (
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/shodojo/tegaki/attempt"
	"github.com/shodojo/tegaki/grader"
	"github.com/shodojo/tegaki/visualize"
)

func gradeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "grade",
		Help: "grade a recorded attempt, usage: grade [--png <file>] <attempt.yaml>",
		LongHelp: `Usage: grade [options] <attempt.yaml>

Grades a recorded attempt file against the reference glyph for the
character it names. Strokes are compared in drawing order.

Options:
  --png=<file>   write a comparison plot (reference green, your strokes
                 black/red) to a PNG file`,
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("grade", flag.ContinueOnError)
			var pngOut string
			flagSet.StringVar(&pngOut, "png", "", "write comparison plot to PNG")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()

			if len(args) == 0 {
				c.Err(errors.New("missing attempt file"))
				return
			}

			a, err := attempt.ReadFile(args[0])
			if err != nil {
				c.Err(err)
				return
			}
			if a.Character == "" {
				c.Err(errors.New("attempt file names no character"))
				return
			}

			g, err := ctx.Library.Glyph(a.Character)
			if err != nil {
				c.Err(err)
				return
			}

			res, err := grader.Grade(a.Strokes, g, ctx.GradePolicy)
			if err != nil {
				c.Err(err)
				return
			}

			c.Printf("score:    %d/100\n", res.Score)
			c.Printf("feedback: %s\n", res.Feedback)
			for _, pair := range res.Pairs {
				c.Printf("  stroke %2d: error %6.2f  [%s]\n", pair.Index+1, pair.Distance, pair.Verdict)
			}

			if pngOut != "" {
				img := visualize.Comparison(res.Pairs, visualize.DefaultSize)
				if err := visualize.WritePNG(pngOut, img); err != nil {
					c.Err(fmt.Errorf("writing %s: %w", pngOut, err))
					return
				}
				c.Println("wrote", pngOut)
			}
		},
	}
}
