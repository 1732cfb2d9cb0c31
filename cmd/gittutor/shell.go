package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kurobon/gittutor/internal/app"
	"github.com/kurobon/gittutor/internal/config"
	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/logging"
	"github.com/kurobon/gittutor/internal/persist"
)

func newShellCmd() *cobra.Command {
	var persistent bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the tutorial as an interactive terminal session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			storeDir := ""
			if persistent {
				storeDir = cfg.StoreDir()
			}
			store, err := persist.Open(storeDir)
			if err != nil {
				return err
			}
			defer store.Close()

			// The REPL keeps zap quiet; command output is the interface.
			return runShell(app.New(store, logging.NewNop()), "shell-session")
		},
	}
	cmd.Flags().BoolVar(&persistent, "persist", false, "save progress to the data directory")
	return cmd
}

func runShell(a *app.App, sessionID string) error {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	sess, err := a.OpenSession(sessionID)
	if err != nil {
		return err
	}

	var completions []readline.PrefixCompleterInterface
	for _, name := range git.SupportedCommands() {
		completions = append(completions, readline.PcItem(name))
	}
	completions = append(completions, readline.PcItem("edit"), readline.PcItem("exit"))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt(a, sessionID, bold, cyan),
		AutoComplete: readline.NewPrefixCompleter(completions...),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println(bold("Git Tutor"), "— type 'help' for commands, 'exit' to quit.")
	printLesson(a, sess, yellow)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case strings.HasPrefix(line, "edit "):
			// The terminal front end has no editor; point the user at
			// echo redirection instead.
			fmt.Println(yellow("usage:"), `edit is available in the web UI; use echo "text" > file here`)
			continue
		}

		out, err := a.Execute(context.Background(), sessionID, line)
		if err != nil {
			fmt.Println(red("internal error:"), err)
			continue
		}

		for _, l := range out.Result.Stdout {
			fmt.Println(l)
		}
		for _, l := range out.Result.Stderr {
			fmt.Println(red(l))
		}
		for _, l := range out.Progress {
			fmt.Println(green(l))
		}
		for _, id := range out.BadgesEarned {
			if def, ok := a.Badges().Definition(id); ok {
				fmt.Println(yellow("🏅 Badge earned: " + def.Title))
			}
		}
		rl.SetPrompt(prompt(a, sessionID, bold, cyan))
	}
}

func prompt(a *app.App, sessionID string, bold, cyan func(...any) string) string {
	snap, err := a.Snapshot(sessionID)
	if err != nil {
		return "$ "
	}
	branch := ""
	if snap.Initialized {
		branch = " (" + snap.CurrentBranch + ")"
	}
	return bold(snap.Cwd) + cyan(branch) + " $ "
}

func printLesson(a *app.App, sess *app.Session, yellow func(...any) string) {
	st := sess.State
	l, ok := a.Lessons().Get(st.ActiveLessonID)
	if !ok {
		return
	}
	ls := st.Lessons[st.ActiveLessonID]
	fmt.Println(yellow("Lesson: " + l.Title))
	if ls != nil && ls.StepIndex < len(l.Steps) {
		step := l.Steps[ls.StepIndex]
		fmt.Println("  " + step.Prompt)
	}
}
