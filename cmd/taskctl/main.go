package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/Nasaee/taskboard/internal/cli"
	"github.com/Nasaee/taskboard/internal/client"
	"github.com/Nasaee/taskboard/internal/env"
)

func main() {
	env.Init()

	// Root flags (apply to every subcommand)
	server := flag.String("server", env.GetString("TASKBOARD_URL", "http://localhost:8000"), "taskboard API base URL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := cli.NewRunner(client.New(*server, nil))
	code := r.Run(ctx, flag.Args())
	stop()
	os.Exit(code)
}
