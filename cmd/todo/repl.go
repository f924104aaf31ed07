package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeusync/jecs/internal/config"
	"github.com/zeusync/jecs/internal/injector"
	"github.com/zeusync/jecs/internal/todo"
)

const replHelp = `commands:
  add <title>          add a todo
  toggle <n>           flip todo n
  edit <n> <title>     retitle todo n (blank title deletes)
  delete <n>           delete todo n
  clear                delete completed todos
  all | none           mark every todo completed or active
  filter <f>           all, active or completed
  debug on|off|verbose state dump after every tick
  list                 print the list
  quit
`

var errQuit = errors.New("quit")

func NewReplCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Drive the todo list from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			td, cleanup, err := injector.InitializeTodo(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			defer func() { _ = td.Logger.Sync() }()

			if err := todo.Render(cmd.OutOrStdout(), td.View.Rows(), td.View.Footer()); err != nil {
				return err
			}
			return runREPL(cmd.Context(), td.App, td.View, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runREPL reads one command per line until EOF or quit.
func runREPL(ctx context.Context, app *todo.App, view *todo.MemoryView, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		err := execLine(ctx, app, out, scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			fmt.Fprintln(out, "error:", err)
		default:
			if err := todo.Render(out, view.Rows(), view.Footer()); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func execLine(ctx context.Context, app *todo.App, out io.Writer, line string) error {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(out, replHelp)
		return nil
	case "list":
		return nil
	case "add":
		_, err := app.Add(ctx, rest)
		return err
	case "toggle", "delete":
		id, err := nth(app, rest)
		if err != nil {
			return err
		}
		if verb == "toggle" {
			return app.Toggle(ctx, id)
		}
		return app.Destroy(ctx, id)
	case "edit":
		n, title, _ := strings.Cut(rest, " ")
		id, err := nth(app, n)
		if err != nil {
			return err
		}
		if err := app.Edit(ctx, id); err != nil {
			return err
		}
		return app.CommitEdit(ctx, id, title)
	case "clear":
		return app.ClearCompleted(ctx)
	case "all", "none":
		return app.MarkAll(ctx, verb == "all")
	case "filter":
		f, err := todo.ParseFilter(rest)
		if err != nil {
			return err
		}
		return app.SetFilter(ctx, f)
	case "debug":
		switch rest {
		case "on":
			return app.SetDebug(ctx, true, false)
		case "verbose":
			return app.SetDebug(ctx, true, true)
		case "off":
			return app.SetDebug(ctx, false, false)
		}
		return fmt.Errorf("debug takes on, off or verbose, got %q", rest)
	default:
		return fmt.Errorf("unknown command %q, try help", verb)
	}
}

func nth(app *todo.App, arg string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return "", fmt.Errorf("expected a todo number, got %q", arg)
	}
	return app.ItemAt(n)
}
