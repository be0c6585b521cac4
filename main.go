// Package main runs the fieldstate demo: a signup form whose fields are
// driven by field controllers.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/billie-coop/fieldstate/internal/config"
	"github.com/billie-coop/fieldstate/internal/field"
	"github.com/billie-coop/fieldstate/internal/logger"
	"github.com/billie-coop/fieldstate/internal/signup"
	"github.com/billie-coop/fieldstate/internal/state"
	"github.com/billie-coop/fieldstate/internal/tui"
	"github.com/billie-coop/fieldstate/internal/tui/components/fieldinput"
	"github.com/billie-coop/fieldstate/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// lookupLatency is the simulated round trip of the availability check.
const lookupLatency = 400 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	manager := config.NewManager(workingDir)
	if err := manager.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	log, closeLog, err := openLogger(manager)
	if err != nil {
		return err
	}
	defer closeLog()

	styles.SetDefaultManager(styles.NewManager(cfg.Theme))

	fields := buildFields(manager, log)
	form := tui.New(fields, tui.WithTitle("Sign up"), tui.WithLogger(log))
	defer form.Close()

	log.Info("starting form", slog.Duration("debounce", cfg.Debounce()))

	p := tea.NewProgram(form, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// openLogger logs to the configured file; the terminal belongs to the UI.
func openLogger(manager *config.Manager) (*slog.Logger, func(), error) {
	cfg := manager.Get()

	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	path := manager.Path(cfg.LogFile)
	if path == "" {
		return logger.Discard(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := logger.New(
		logger.WithOutput(f),
		logger.WithFormat(format),
		logger.WithDebug(cfg.Debug),
		logger.WithAttr(slog.String("app", "fieldstate")),
	)
	return log, func() { _ = f.Close() }, nil
}

func buildFields(manager *config.Manager, log *slog.Logger) []*fieldinput.Model {
	cfg := manager.Get()

	checker := signup.NewChecker(lookupLatency, "admin", "root", "taken")
	checker.SetLogger(log)

	// The username draft survives restarts.
	var usernameOpts []state.StoreOption[field.State[string, string]]
	usernameOpts = append(usernameOpts, state.WithLogger[field.State[string, string]](log))
	if draft := manager.Path(cfg.DraftFile); draft != "" {
		usernameOpts = append(usernameOpts, state.WithPersistence[field.State[string, string]](draft))
	}
	usernameStore := state.NewStore(field.NewState[string, string](""), usernameOpts...)

	username := field.Resume(usernameStore.Value(),
		field.WithObservable[string, string](usernameStore),
		field.WithValidator[string, string](signup.Username(cfg.MinUsernameLength)),
		field.WithAsyncValidator[string, string](checker.Check),
		field.WithDebounce[string, string](cfg.Debounce()),
		field.WithLogger[string, string](log.With(slog.String("label", "username"))),
	)
	username.SetAutovalidate(true)

	age := field.New[string, string]("",
		field.WithValidator[string, string](signup.Age),
		field.WithLogger[string, string](log.With(slog.String("label", "age"))),
	)

	usernameInput := fieldinput.New("Username", username)
	usernameInput.Placeholder("letters, digits, - and _")
	ageInput := fieldinput.New("Age", age)
	ageInput.Placeholder("0-150")

	return []*fieldinput.Model{usernameInput, ageInput}
}
