package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"todoapp/internal/config"
	"todoapp/internal/tasks/data"
	"todoapp/internal/tasks/seed"
	"todoapp/internal/tasks/view"
)

// ErrNoSeed is returned by list when no seed file is configured
var ErrNoSeed = errors.New("no seed file: use --seed or TODOAPP_SEED")

var (
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

func listCmd(opts *rootOptions) *cobra.Command {
	var flagSearch string
	var flagFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "Print the filtered, newest-first view of the seed file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.SeedFile == "" {
				return ErrNoSeed
			}

			s, _, err := seedStore(cfg)
			if err != nil {
				return err
			}

			tasks := view.Derive(s.Tasks(), s.Filter())
			if flagSearch != "" {
				tasks = view.Search(tasks, flagSearch)
			}

			out := cmd.OutOrStdout()
			switch flagFormat {
			case "text", "":
				printTasks(out, tasks)
				return nil
			case "yaml":
				content, err := seed.WriteYAML(tasks)
				if err != nil {
					return err
				}
				_, err = out.Write(content)
				return err
			}
			return fmt.Errorf("unknown format %q (want text or yaml)", flagFormat)
		},
	}

	cmd.Flags().StringVar(&flagSearch, "search", "", "Fuzzy search over task text")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, yaml")

	return cmd
}

func printTasks(out io.Writer, tasks []data.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No Todos")
		return
	}

	for _, t := range tasks {
		printTask(out, t)
	}

	pending, done := data.TaskCount(tasks)
	fmt.Fprintf(out, "\n%s task(s) (%s pending, %s done)\n", bold(len(tasks)), yellow(pending), green(done))
}

func printTask(out io.Writer, t data.Task) {
	check := "[ ]"
	text := t.Text
	if t.IsDone() {
		check = green("[x]")
		text = dim(text)
	}
	fmt.Fprintf(out, "%s %s %s  %s\n", magenta(t.ShortID()), check, text, cyan(t.FormatTime()))
}
