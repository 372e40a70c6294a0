package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/tablewise/concierge"
	"github.com/tablewise/concierge/agent"
	"github.com/tablewise/concierge/restaurant"
	"github.com/tablewise/concierge/sqlite"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive concierge session",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().String("provider", "", `Completion provider ("groq" or "gemini"); auto-detected from env by default`)
	chatCmd.Flags().String("api-key", "", "API key; overrides the provider's environment variable")
	chatCmd.Flags().String("model", "", "Model ID; defaults to the provider's standard model")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dbPath, _ := cmd.Flags().GetString("db")
	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Seed(ctx); err != nil {
		return err
	}

	meta, err := db.Metadata(ctx)
	if err != nil {
		return err
	}
	catalog := restaurant.NewCatalog(meta)

	registry, err := concierge.NewRegistry(restaurant.Tools(db, catalog)...)
	if err != nil {
		return err
	}

	providerFlag, _ := cmd.Flags().GetString("provider")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	provider, model, err := resolveProvider(ctx, providerFlag, apiKeyFlag,
		os.Getenv("GROQ_API_KEY"), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return err
	}
	if flagModel, _ := cmd.Flags().GetString("model"); flagModel != "" {
		model = flagModel
	}

	a := agent.New(provider, registry,
		agent.WithModel(model),
		agent.WithLogger(logger))

	return repl(cmd, a)
}

// styles maps the semantic theme onto lipgloss styles. ANSI indices keep the
// palette in the hands of the user's terminal theme.
type styles struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	err       lipgloss.Style
	banner    lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(theme concierge.Theme) styles {
	ansi := func(n int) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(n)))
	}
	return styles{
		user:      ansi(theme.UserMsg).Bold(true),
		assistant: ansi(theme.Assistant),
		err:       ansi(theme.Error),
		banner:    ansi(theme.Banner).Bold(true),
		muted:     ansi(theme.Muted),
	}
}

func repl(cmd *cobra.Command, a *agent.Agent) error {
	out := cmd.OutOrStdout()
	st := newStyles(concierge.DefaultTheme())

	// Markdown rendering only makes sense on a capable terminal.
	var render func(string) string
	if termenv.ColorProfile() != termenv.Ascii {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			render = func(s string) string {
				md, err := r.Render(s)
				if err != nil {
					return s
				}
				return strings.TrimRight(md, "\n")
			}
		}
	}
	if render == nil {
		render = func(s string) string { return s }
	}

	fmt.Fprintln(out, st.banner.Render("Restaurant Concierge"))
	fmt.Fprintln(out, st.muted.Render(`Try: "romantic italian place in new york for 2" or "book a table at 7pm".`))
	fmt.Fprintln(out, st.muted.Render(`Type "exit" or "quit" to leave.`))
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, st.user.Render("You: "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Fprintln(out, st.muted.Render("Goodbye!"))
			return nil
		}

		answer, err := a.Run(cmd.Context(), input)
		if err != nil {
			fmt.Fprintln(out, st.err.Render("I'm having trouble processing that request. Please try again."))
			continue
		}
		fmt.Fprintln(out, st.assistant.Render("Concierge:"))
		fmt.Fprintln(out, render(answer))
		fmt.Fprintln(out)
	}
}
