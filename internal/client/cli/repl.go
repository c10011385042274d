package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Home(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Refresh(ctx context.Context) error

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	MyPage(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	Board(ctx context.Context, board string) error
	Post(ctx context.Context, id string) error
	Comment(ctx context.Context, text string) error
	DeleteComment(ctx context.Context, id string) error
	DeletePost(ctx context.Context) error
	SaveImage(ctx context.Context, path string) error

	NewPost(ctx context.Context, board string) error
	Image(ctx context.Context, path string) error
	Submit(ctx context.Context) error

	Admin(ctx context.Context) error
	DeleteUser(ctx context.Context, id string) error

	Toasts(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Available commands: home, go <path>, board <free|notice>, post <id>, login, signup, toasts, dismiss <id>, exit"
	helpUser      = "Available commands: home, go <path>, board <free|notice>, post <id>, comment <text>, delcomment <id>, delpost, saveimage <file>, newpost <free|notice>, image <path|->, submit, me, deleteaccount, logout, toasts, dismiss <id>, refresh, exit"
	helpAdmin     = helpUser + ", admin, deluser <id>"
)

// runREPL starts the read–eval–print loop of the CommunityHub CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The rest of the line is the argument; commands
// that need one print their usage when it is missing. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// failures through notifications or their own output.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("hub%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		need := func(usage string, f func(string) error) {
			if arg == "" {
				printlnFn("Usage:", usage)
				return
			}
			_ = f(arg)
		}

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpUser)
			default:
				printlnFn(helpAnonymous)
			}

		case "home":
			_ = a.Home(ctx)
		case "go":
			need("go <path>", func(s string) error { return a.Go(ctx, s) })
		case "r", "refresh":
			_ = a.Refresh(ctx)

		case "login":
			_ = a.Login(ctx)
		case "signup":
			_ = a.Signup(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "me":
			_ = a.MyPage(ctx)
		case "deleteaccount":
			_ = a.DeleteAccount(ctx)

		case "board":
			need("board <free|notice>", func(s string) error { return a.Board(ctx, s) })
		case "post":
			need("post <id>", func(s string) error { return a.Post(ctx, s) })
		case "comment":
			need("comment <text>", func(s string) error { return a.Comment(ctx, s) })
		case "delcomment":
			need("delcomment <id>", func(s string) error { return a.DeleteComment(ctx, s) })
		case "delpost":
			_ = a.DeletePost(ctx)
		case "saveimage":
			need("saveimage <file>", func(s string) error { return a.SaveImage(ctx, s) })

		case "newpost":
			need("newpost <free|notice>", func(s string) error { return a.NewPost(ctx, s) })
		case "image":
			need("image <path|->", func(s string) error { return a.Image(ctx, s) })
		case "submit":
			_ = a.Submit(ctx)

		case "admin":
			_ = a.Admin(ctx)
		case "deluser":
			need("deluser <id>", func(s string) error { return a.DeleteUser(ctx, s) })

		case "toasts":
			_ = a.Toasts(ctx)
		case "dismiss":
			need("dismiss <id>", func(s string) error { return a.Dismiss(ctx, s) })

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
