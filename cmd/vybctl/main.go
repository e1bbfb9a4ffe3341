package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/rohits-web03/vybr8r/internal/client"
	"github.com/rohits-web03/vybr8r/internal/logger"
	"golang.org/x/term"
)

const usage = `usage: vybctl [flags] <command> [args]

commands:
  connect <wallet>      sign in with a wallet address
  status <wallet>       show whether the wallet's user finished onboarding
  onboard               complete onboarding (-username, -handle, -bio, -interests)
  me                    show the signed-in user
  logout                forget the local session
  watch                 read "connect <wallet>" / "disconnect" lines from stdin

flags:
`

type app struct {
	store  *client.AuthStore
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vybctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	defaultState, _ := client.DefaultStatePath()
	apiURL := fs.String("api", envOr("VYBR8R_API", "http://localhost:8080"), "API base URL")
	statePath := fs.String("state", defaultState, "session file")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	if *statePath == "" {
		return errors.New("no session file path; pass -state")
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(stderr, logger.Config{Level: level, Format: "text", ServiceName: "vybctl"})

	api := client.NewAPIClient(*apiURL, client.WithNotifier(client.NotifierFunc(func(err *client.Error) {
		fmt.Fprintln(stderr, "!", err.Message)
	})))
	store, err := client.NewAuthStore(api, client.NewFileStorage(*statePath), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{store: store, stdin: stdin, stdout: stdout}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "connect":
		return a.connect(ctx, rest)
	case "status":
		return a.status(ctx, rest)
	case "onboard":
		return a.onboard(ctx, rest, stderr)
	case "me":
		return a.me(ctx)
	case "logout":
		store.Logout()
		fmt.Fprintln(stdout, "logged out")
		return nil
	case "watch":
		return a.watch(ctx)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) connect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: vybctl connect <wallet>")
	}
	if !a.store.Connect(ctx, args[0]) {
		return errors.New("could not connect wallet")
	}
	a.printState()
	return nil
}

func (a *app) status(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: vybctl status <wallet>")
	}
	onboarded, err := a.store.CheckOnboardingStatus(ctx, args[0]).Unpack()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "onboarded: %t\n", onboarded)
	return nil
}

func (a *app) onboard(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("onboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("username", "", "display name")
	handle := fs.String("handle", "", "unique handle")
	bio := fs.String("bio", "", "short bio")
	avatar := fs.String("avatar", "", "avatar URL")
	interests := fs.String("interests", "", "comma separated interest names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(a.stdin)
	if *username == "" {
		*username = a.prompt(reader, "Username: ")
	}
	if *handle == "" {
		*handle = a.prompt(reader, "Handle: ")
	}

	in := client.ProfileInput{Username: *username, Handle: *handle}
	if *bio != "" {
		in.Bio = bio
	}
	if *avatar != "" {
		in.Avatar = avatar
	}
	for _, name := range strings.Split(*interests, ",") {
		if name = strings.TrimSpace(name); name != "" {
			in.Interests = append(in.Interests, name)
		}
	}

	user, err := a.store.CompleteOnboarding(ctx, in).Unpack()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "welcome,", user.String())
	return nil
}

func (a *app) me(ctx context.Context) error {
	user, err := a.store.FetchUser(ctx).Unpack()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, user.String())
	if user.Token != nil {
		fmt.Fprintf(a.stdout, "token: %s (%s) @ %.4f\n", user.Token.TokenSymbol, user.Token.TokenName, user.Token.CurrentPrice)
	}
	a.printState()
	return nil
}

// watch feeds stdin lines to the store as wallet bridge events.
func (a *app) watch(ctx context.Context) error {
	out := &lockedWriter{w: a.stdout}
	events := make(chan client.WalletEvent)
	unsubscribe := a.store.Subscribe(func(s client.Snapshot) {
		if !s.Busy {
			fmt.Fprintf(out, "state: %s %s\n", s.State, s.WalletAddress)
		}
	})
	defer unsubscribe()

	go func() {
		defer close(events)
		scanner := bufio.NewScanner(a.stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			var ev client.WalletEvent
			switch {
			case fields[0] == "connect" && len(fields) == 2:
				ev = client.WalletEvent{Type: client.WalletConnected, Address: fields[1]}
			case fields[0] == "disconnect":
				ev = client.WalletEvent{Type: client.WalletDisconnected}
			default:
				fmt.Fprintln(out, "? expected: connect <wallet> | disconnect")
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := a.store.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (a *app) prompt(reader *bufio.Reader, label string) string {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stdout, label)
	}
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) printState() {
	s := a.store.Snapshot()
	fmt.Fprintf(a.stdout, "state: %s\n", s.State)
	if a.store.ShouldPromptOnboarding() {
		fmt.Fprintln(a.stdout, "next: vybctl onboard -username <name> -handle <handle>")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
