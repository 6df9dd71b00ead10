package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docdesk/internal/client/router"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	prompt() string
	isLoggedIn() bool
	Navigate(ctx context.Context, target string) error
	Logout(ctx context.Context) error
	Filter(ctx context.Context, term string) error
	Summary(ctx context.Context, id string) error
	Upload(ctx context.Context, path string) error
	Delete(ctx context.Context, id string) error
	Select(ctx context.Context, id string) error
	Ask(ctx context.Context, question string) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	SaveProfile(ctx context.Context) error
	Stats(ctx context.Context) error
	Report(ctx context.Context, err error)
}

const (
	helpAnonymous = `Available commands:
  login                 sign in
  register              create an account
  go <path>             open a page, e.g. go /search?doc=7
  stats                 API requests made by this shell
  exit | quit           leave the program`

	helpSignedIn = `Available commands:
  home                  dashboard
  docs                  list documents
  filter [term]         filter documents by title or file name
  summary <id>          full summary and keywords of a document
  upload <file>         upload a document
  delete <id>           delete a document
  search [id]           ask questions, optionally about document <id>
  select <id>           choose the document to ask about
  ask <question>        ask about the selected document
  profile               show your profile
  edit                  change name and email
  password              change password
  avatar <file>         choose a new profile picture (JPG or PNG, < 5MB)
  save                  save profile changes
  go <path>             open a page, e.g. go /search?doc=7
  stats                 API requests made by this shell
  logout                sign out
  exit | quit           leave the program`
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first word selects the command and the rest of the line is its
// argument, so file names and questions may contain spaces. Every page
// command goes through the route gate. Handler errors are passed to
// Report, which also deals with expired sessions.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printFn(a.prompt())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		usage := func(u string) { printlnFn("Usage:", u) }

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "go":
			if rest == "" {
				usage("go <path>")
				continue
			}
			cmdErr = a.Navigate(ctx, rest)

		case "home":
			cmdErr = a.Navigate(ctx, string(router.RouteHome))

		case "docs":
			cmdErr = a.Navigate(ctx, string(router.RouteDocuments))

		case "search":
			cmdErr = a.Navigate(ctx, searchTarget(rest))

		case "profile":
			cmdErr = a.Navigate(ctx, string(router.RouteProfile))

		case "login":
			cmdErr = a.Navigate(ctx, string(router.RouteLogin))

		case "register":
			cmdErr = a.Navigate(ctx, string(router.RouteRegister))

		case "logout":
			cmdErr = a.Logout(ctx)

		case "filter":
			cmdErr = a.Filter(ctx, rest)

		case "summary":
			if rest == "" {
				usage("summary <id>")
				continue
			}
			cmdErr = a.Summary(ctx, rest)

		case "upload":
			if rest == "" {
				usage("upload <file>")
				continue
			}
			cmdErr = a.Upload(ctx, rest)

		case "delete":
			if rest == "" {
				usage("delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, rest)

		case "select":
			if rest == "" {
				usage("select <id>")
				continue
			}
			cmdErr = a.Select(ctx, rest)

		case "ask":
			if rest == "" {
				usage("ask <question>")
				continue
			}
			cmdErr = a.Ask(ctx, rest)

		case "edit":
			cmdErr = a.EditProfile(ctx)

		case "password":
			cmdErr = a.ChangePassword(ctx)

		case "avatar":
			if rest == "" {
				usage("avatar <file>")
				continue
			}
			cmdErr = a.Avatar(ctx, rest)

		case "save":
			cmdErr = a.SaveProfile(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.Report(ctx, cmdErr)
	}
}
