package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Save(ctx context.Context, id string) error
	Unsave(ctx context.Context, id string) error
	Mine(ctx context.Context) error
	Saved(ctx context.Context) error
	Describe(ctx context.Context) error
	Categories(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, (l)ist [text] [-c category] [-t prep], show <id>, describe, categories, exit"
	helpLoggedIn  = "Available commands: (l)ist [text] [-c category] [-t prep] [-n limit], show <id>, create, edit <id>, delete <id>, " +
		"save <id>, unsave <id>, mine, saved, describe, categories, profile, editprofile, logout, exit"
)

// runREPL reads commands from r until EOF, "exit" or "quit". The first word
// selects the command; commands taking an id print usage when it is missing.
// A nil statusFn disables the prompt, for piped input.
//
// Handlers report their own errors, so the loop ignores them and keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	withID := func(args []string, usage string, fn func(ctx context.Context, id string) error) {
		if len(args) == 0 {
			fmt.Fprintln(w, "Usage:", usage)
			return
		}
		_ = fn(ctx, args[0])
	}

	for {
		if ctx.Err() != nil {
			return
		}
		if statusFn != nil {
			fmt.Fprintf(w, "recipebox %s> ", statusFn())
		}

		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "profile", "whoami":
			_ = a.Profile(ctx)
		case "editprofile":
			_ = a.EditProfile(ctx)
		case "l", "list":
			_ = a.List(ctx, args)
		case "show":
			withID(args, "show <id>", a.Show)
		case "create":
			_ = a.Create(ctx)
		case "edit":
			withID(args, "edit <id>", a.Edit)
		case "delete":
			withID(args, "delete <id>", a.Delete)
		case "save":
			withID(args, "save <id>", a.Save)
		case "unsave":
			withID(args, "unsave <id>", a.Unsave)
		case "mine":
			_ = a.Mine(ctx)
		case "saved":
			_ = a.Saved(ctx)
		case "describe":
			_ = a.Describe(ctx)
		case "categories":
			_ = a.Categories(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
