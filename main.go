package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shodojo/tegaki/log"
	"github.com/shodojo/tegaki/shell"
	"github.com/shodojo/tegaki/version"
)

func main() {
	serverMode := flag.Bool("server", false, "run as an HTTP API server instead of the interactive shell")
	port := flag.String("port", "", "port for server mode, overrides TEGAKI_PORT")
	glyphDir := flag.String("glyphs", "", "glyph library directory, overrides TEGAKI_GLYPHS")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.Parse()
	log.InitLog()

	if *showVersion {
		fmt.Println(version.Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Error.Fatal(err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *glyphDir != "" {
		cfg.GlyphDir = *glyphDir
	}

	if *serverMode {
		runServerMode(cfg)
		return
	}

	provider, err := cfg.buildProvider()
	if err != nil {
		log.Error.Fatal(err)
	}

	ctx := &shell.ShellCtxt{
		Library:     provider,
		GradePolicy: cfg.gradePolicy(),
		SnapPolicy:  cfg.snapPolicy(),
	}

	if err := shell.RunShell(ctx, flag.Args()); err != nil {
		log.Error.Println("failed to run shell:", err)
		os.Exit(1)
	}
}
