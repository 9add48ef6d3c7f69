package shell

import (
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
)

func glyphsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "glyphs",
		Help: "list the characters available in the glyph library",
		Func: func(c *ishell.Context) {
			lister, ok := ctx.Library.(Lister)
			if !ok {
				c.Err(errors.New("the configured glyph provider cannot enumerate characters"))
				return
			}

			chars, err := lister.List()
			if err != nil {
				c.Err(err)
				return
			}

			for _, char := range chars {
				g, err := ctx.Library.Glyph(char)
				if err != nil {
					c.Printf("%s\t(unreadable: %s)\n", char, err.Error())
					continue
				}
				c.Printf("%s\t%d strokes\t%s\n", g.Character, len(g.Strokes), g.Meaning)
			}
			c.Println(fmt.Sprintf("%d glyph(s)", len(chars)))
		},
	}
}
