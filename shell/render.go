package shell

import (
	"errors"

	"github.com/abiosoft/ishell"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/visualize"
)

func renderCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "render",
		Help: "render the practice session progress to a PNG, usage: render <output.png>",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Err(errors.New("no practice session, start one with 'practice <character>'"))
				return
			}
			if len(c.Args) == 0 {
				c.Err(errors.New("missing output file"))
				return
			}

			st := ctx.Session.State()
			locked := make([]geometry.Stroke, 0, len(st.Locked))
			for _, l := range st.Locked {
				locked = append(locked, l.Points)
			}
			remaining := ctx.Session.Glyph().Strokes[st.Target:]

			img := visualize.Progress(locked, remaining, visualize.DefaultSize)
			if err := visualize.WritePNG(c.Args[0], img); err != nil {
				c.Err(err)
				return
			}
			c.Println("wrote", c.Args[0])
		},
	}
}
