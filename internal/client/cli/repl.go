package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isUnlocked() bool
	Login(ctx context.Context) error
	Unlock(ctx context.Context) error
	LockVault(ctx context.Context) error
	MkDir(ctx context.Context) error
	ChangeFolder(ctx context.Context) error
	List(ctx context.Context) error
	Put(ctx context.Context) error
	Get(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the CloudVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cv> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn("Available commands: login, exit")
			case !a.isUnlocked():
				printlnFn("Available commands: unlock, (l)ist, mkdir, cd, exit")
			default:
				printlnFn("Available commands: (l)ist, mkdir, cd, put, get, lock, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "unlock":
			_ = a.Unlock(ctx)

		case "lock":
			_ = a.LockVault(ctx)

		case "mkdir":
			_ = a.MkDir(ctx)

		case "cd":
			_ = a.ChangeFolder(ctx)

		case "l", "list", "ls":
			_ = a.List(ctx)

		case "put":
			_ = a.Put(ctx)

		case "get":
			_ = a.Get(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
