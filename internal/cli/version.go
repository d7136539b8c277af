package cli

import (
	"fmt"

	"github.com/amterp/cards/internal/version"
	"github.com/amterp/ra"
)

func registerVersion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("version")
	cmd.SetDescription("Return version of cards application")

	ctx.VersionUsed, _ = parent.RegisterCmd(cmd)
}

func runVersion(app *App) error {
	_, err := fmt.Fprintln(app.Out, version.AppVersion)
	return err
}
