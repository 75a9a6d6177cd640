package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Root runs the interactive loop. It reads a line, parses the first token as
// the command and dispatches to methods on a. The loop exits on EOF or when
// the user types "exit" or "quit".
func (a *App) Root() {

	fmt.Fprintln(a.out, "Welcome to postboard CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "pb %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if a.dispatch(cmd, args) {
			break
		}
	}
}

// dispatch executes one command; it reports whether the loop should stop.
func (a *App) dispatch(cmd string, args []string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, "Available commands: post, list, show <id>, delete <id>, status, logout, exit")
		} else {
			fmt.Fprintln(a.out, "Available commands: register, login, list, show <id>, status, exit")
		}

	case "register":
		a.Register()

	case "login":
		a.Login()

	case "logout":
		a.Logout()

	case "post":
		if !a.isLoggedIn() {
			fmt.Fprintln(a.out, "Log in first")
			break
		}
		a.AddPost()

	case "list":
		a.ListPosts()

	case "show":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "Usage: show <id>")
			break
		}
		a.ShowPost(args[0])

	case "delete":
		if !a.isLoggedIn() {
			fmt.Fprintln(a.out, "Log in first")
			break
		}
		if len(args) != 1 {
			fmt.Fprintln(a.out, "Usage: delete <id>")
			break
		}
		a.DeletePost(args[0])

	case "status":
		a.Status()

	case "exit", "quit":
		return true

	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
	}
	return false
}
