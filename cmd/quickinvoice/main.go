package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/quickinvoice/internal/app"
	"github.com/andy/quickinvoice/internal/cli"
)

func main() {
	ctx := context.Background()

	// Help, templates and config run without the database (which may prompt for a password)
	if cli.NeedsApp(os.Args[1:]) {
		a, err := app.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
