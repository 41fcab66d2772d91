// Atlasctl - send commands to a running operator API, or read its journal
//
// Usage:
//
//	ATLAS_URL=http://localhost:8080 atlasctl move forward
//	atlasctl journal [limit]
//	atlasctl run <script.yaml>   (over the operator control channel)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/teslashibe/go-atlas/internal/script"
	"github.com/teslashibe/go-atlas/pkg/client"
	"github.com/teslashibe/go-atlas/pkg/protocol"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: atlasctl <command text> | journal [limit] | run <script.yaml>")
		os.Exit(2)
	}

	url := os.Getenv("ATLAS_URL")
	if url == "" {
		url = client.DefaultURL
	}
	c := client.New(url)

	var err error
	switch {
	case os.Args[1] == "journal":
		err = journal(c, os.Args[2:])
	case os.Args[1] == "run" && len(os.Args) == 3:
		err = runScript(c, os.Args[2])
	default:
		err = apply(c, strings.Join(os.Args[1:], " "))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func apply(c *client.Client, text string) error {
	out, err := c.Apply(context.Background(), text)
	if err != nil {
		return err
	}
	printOutcome(out)
	fmt.Printf("position=(%d, %d) status=%s battery=%v mood=%s\n",
		out.State.Position.X, out.State.Position.Y, out.State.Status, out.State.Battery, out.State.Mood)
	return nil
}

func runScript(c *client.Client, path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	op, err := c.Dial(ctx, "")
	if err != nil {
		return err
	}
	defer op.Close()

	fmt.Printf("running %s as operator %s\n", s.Name, op.ID)
	for _, cmd := range s.Commands {
		out, err := op.Apply(ctx, cmd)
		if err != nil {
			return fmt.Errorf("%q: %w", cmd, err)
		}
		printOutcome(out)
	}
	return nil
}

func journal(c *client.Client, args []string) error {
	limit := 20
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}

	page, err := c.Journal(context.Background(), limit)
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d outcomes, newest first\n", len(page.Outcomes), page.Total)
	for i := range page.Outcomes {
		o := &page.Outcomes[i]
		fmt.Printf("%s [%s] ", o.At.Local().Format("15:04:05"), o.Source)
		printOutcome(o)
	}
	return nil
}

func printOutcome(o *protocol.OutcomeData) {
	mark := "✅"
	if !o.Result.Success {
		mark = "❌"
	}
	fmt.Printf("%q → %s %s %s\n", o.Command, o.Result.Action, mark, o.Result.Note)
}
