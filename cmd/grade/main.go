// Command grade scores recorded attempt files in bulk, for teachers
// grading a class worth of practice at once.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
)

func main() {
	glyphDir := flag.String("glyphs", "glyphs", "glyph library directory")
	service := flag.String("service", "", "glyph service URL, used instead of -glyphs when set")
	sensitivity := flag.Float64("sensitivity", 3, "distance to score conversion factor")
	batchSize := flag.Int64("batch", 4, "attempts graded concurrently")
	asJSON := flag.Bool("json", false, "emit results as JSON")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: grade [options] <attempt.yaml> ...")
		os.Exit(1)
	}

	var src glyph.Provider
	if *service != "" {
		src = glyph.NewClient(*service, 10*time.Second)
	} else {
		src = glyph.NewDir(*glyphDir)
	}
	provider, err := glyph.NewCached(src, 128)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	policy := grader.WholeGlyphPolicy()
	policy.Sensitivity = *sensitivity

	results := grader.GradeBatch(context.Background(), provider, flag.Args(), policy, *batchSize)

	failed := 0
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
			enc.Encode(r)
		}
	} else {
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("%s: error: %v\n", r.Path, r.Err)
				continue
			}
			fmt.Printf("%s: %s scored %d, %s\n", r.Path, r.Character, r.Result.Score, r.Result.Feedback)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
