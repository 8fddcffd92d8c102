package cmd

import (
	"github.com/achilleasa/clconform/log"
	"github.com/urfave/cli"
)

var logger = log.New("clconform")

// Apply the configured log level; the -v and -vv flags take precedence.
func setupLogging(ctx *cli.Context, level log.Level) {
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
