// Command playercard looks up one NBA player and prints the rendered panel.
//
//	playercard -first lebron -last james
//
// Missing names are prompted for interactively.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/riskibarqy/nba-player-search/internal/app"
	"github.com/riskibarqy/nba-player-search/internal/config"
	"github.com/riskibarqy/nba-player-search/internal/display"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("playercard", flag.ContinueOnError)
	flags.SetOutput(stderr)
	first := flags.String("first", "", "player first name")
	last := flags.String("last", "", "player last name")
	baseURL := flags.String("base-url", "", "players API base URL (overrides NBA_API_BASE_URL)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if *baseURL != "" {
		cfg.NBAAPIBaseURL = *baseURL
	}

	logger := logging.NewConsole(stderr, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	form := cliForm{
		usecase.FieldFirstName: *first,
		usecase.FieldLastName:  *last,
	}
	if err := form.prompt(); err != nil {
		logger.Error("read player name", "error", err)
		return 1
	}

	search, err := app.NewPlayerSearch(cfg, logger)
	if err != nil {
		logger.Error("build player search", "error", err)
		return 1
	}
	defer search.Close()

	panel := display.NewWriterPanel(stdout)
	submissions := usecase.NewSubmissionHandler(search.Service, panel, logger)
	result := submissions.SubmitSync(context.Background(), nil, form)
	if result.State != player.StateSuccess {
		logger.Warn("player lookup failed",
			"first_name", result.Query.FirstName,
			"last_name", result.Query.LastName,
			"failure_kind", usecase.FailureKind(result.Err),
			"error", result.Err,
		)
		return 1
	}
	return 0
}

// cliForm is a Form backed by flag values.
type cliForm map[string]string

func (f cliForm) ReadField(name string) string {
	return f[name]
}

func (f cliForm) prompt() error {
	questions := []struct {
		field   string
		message string
	}{
		{field: usecase.FieldFirstName, message: "First name:"},
		{field: usecase.FieldLastName, message: "Last name:"},
	}
	for _, q := range questions {
		if f[q.field] != "" {
			continue
		}
		var answer string
		if err := survey.AskOne(&survey.Input{Message: q.message}, &answer); err != nil {
			return err
		}
		f[q.field] = answer
	}
	return nil
}
