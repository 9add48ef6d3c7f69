package shell

import (
	"errors"

	"github.com/abiosoft/ishell"

	"github.com/shodojo/tegaki/attempt"
	"github.com/shodojo/tegaki/session"
)

func practiceCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "practice",
		Help: "start a progressive practice session, usage: practice <character>",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing character"))
				return
			}

			g, err := ctx.Library.Glyph(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}

			if ctx.Session == nil {
				ctx.Session = session.New(g, ctx.SnapPolicy)
			} else {
				ctx.Session.SetGlyph(g)
			}

			c.Printf("practicing %s (%d strokes), submit strokes with 'stroke <file>'\n",
				g.Character, len(g.Strokes))
			c.SetPrompt(ctx.prompt())
		},
	}
}

func strokeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "stroke",
		Help: "submit drawn strokes from a file to the practice session, usage: stroke <attempt.yaml>",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Err(errors.New("no practice session, start one with 'practice <character>'"))
				return
			}
			if len(c.Args) == 0 {
				c.Err(errors.New("missing stroke file"))
				return
			}

			a, err := attempt.ReadFile(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			if len(a.Strokes) == 0 {
				c.Err(errors.New("no strokes in file"))
				return
			}

			for _, raw := range a.Strokes {
				dec, err := ctx.Session.Submit(raw)
				if err == session.ErrComplete {
					c.Println("glyph already complete, 'reset' to start over")
					break
				}
				if err != nil {
					c.Err(err)
					break
				}

				if dec.Accepted {
					c.Printf("stroke %d accepted (error %.2f), snapped to reference\n", dec.Index+1, dec.Distance)
				} else {
					c.Printf("stroke %d rejected (error %.2f, threshold %.0f)\n",
						dec.Index+1, dec.Distance, ctx.Session.Policy().SnapThreshold)
					if ctx.Session.Policy().ClearRejected {
						c.Println("stroke cleared, try again")
					}
					break
				}
			}

			if ctx.Session.Complete() {
				c.Println("all strokes accepted!")
			}
			c.SetPrompt(ctx.prompt())
		},
	}
}

func statusCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "status",
		Help: "show the state of the practice session",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Println("no practice session")
				return
			}

			st := ctx.Session.State()
			c.Printf("character: %s\n", st.Character)
			c.Printf("progress:  %d/%d stroke(s) locked\n", st.Target, st.Total)
			if st.Complete {
				c.Println("complete")
			}
			if st.Last != nil && !st.Last.Accepted {
				c.Printf("last stroke rejected with error %.2f\n", st.Last.Distance)
			}
		},
	}
}

func resetCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "reset",
		Help: "restart the practice session from the first stroke",
		Func: func(c *ishell.Context) {
			if ctx.Session == nil {
				c.Println("no practice session")
				return
			}

			ctx.Session.Reset()
			c.Println("session reset")
			c.SetPrompt(ctx.prompt())
		},
	}
}
