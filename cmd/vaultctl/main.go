package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/projectvault/internal/client/cli"
	"github.com/dmitrijs2005/projectvault/internal/client/config"
	"github.com/dmitrijs2005/projectvault/internal/client/vaultclient"
	"github.com/dmitrijs2005/projectvault/internal/flagx"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.LoadConfig()

	client, err := vaultclient.New(cfg.ServerEndpointAddr, cfg.AccessToken, cfg.RequestTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	app := cli.NewApp(client, os.Stdin, os.Stdout, os.Stderr)

	args := flagx.StripArgs(os.Args[1:], config.GlobalFlags)
	if err := app.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "vaultctl:", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
