package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ladzin/modula/internal/app"
	"github.com/ladzin/modula/internal/config"
	"github.com/ladzin/modula/internal/storage"
	"github.com/ladzin/modula/internal/store"
	"github.com/ladzin/modula/internal/ui"
	"github.com/ladzin/modula/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			handleExport(os.Args[2:])
			return
		case "import":
			handleImport(os.Args[2:])
			return
		case "version":
			fmt.Printf("modula v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	configFlag := flag.String("config", "", "Config file path")
	viewFlag := flag.String("view", "", "Starting view (tree, kanban, timeline, flowchart)")
	themeFlag := flag.String("theme", "", "Theme name (forest, slate)")
	flag.Parse()

	if err := runTUI(*configFlag, *viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `modula - project management with modules, kanban and flowcharts

Usage:
  modula                      Start the TUI
  modula export <project>     Export a project to <title>.json
  modula import <file>        Import a project from a JSON export
  modula version              Show version
  modula help                 Show this help

TUI Options:
  --config <path>   Config file (default ~/.config/modula/config.yaml)
  --view <name>     Starting view (tree, kanban, timeline, flowchart)
  --theme <name>    Theme (forest, slate)

Keybindings:
  Views:        1-4           Switch views
                ctrl+n        Next project
                P             New project
                /             Search tasks
                ?             Help
                q             Quit

  Kanban:       h/l j/k       Navigate
                H/L           Move task between stages
                t             Start/stop timer
                p             Cycle priority

  Tree:         n/N           Select node
                arrows        Nudge node (pins it)
                R             Reset layout

  Flowchart:    a/c/e         Add, connect, rename nodes
                enter         Open node subtask board
                A             Auto-arrange`

	fmt.Println(help)
}

// openStore loads persisted state without the instance lock; the
// export and import commands only touch the state blob
func openStore() (*storage.DB, *store.Store, error) {
	db, err := storage.Open(storage.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	state, err := db.Load()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("loading state: %w", err)
	}
	st := store.New(store.Options{Initial: &state, Persister: db})
	return db, st, nil
}

func handleExport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: modula export <project title or id>")
		os.Exit(1)
	}
	wanted := strings.Join(args, " ")

	db, st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var target *struct{ id, title string }
	for _, p := range st.Projects() {
		if p.ID == wanted || strings.EqualFold(p.Title, wanted) {
			target = &struct{ id, title string }{p.ID, p.Title}
			break
		}
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "Error: no project named %q\n", wanted)
		os.Exit(1)
	}

	data := st.ExportProject(target.id)
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	path, err := storage.WriteExport(cwd, target.title, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %s to %s\n", target.title, filepath.Base(path))
}

func handleImport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: modula import <file.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	p, err := st.ImportProject(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %s (%d modules)\n", p.Title, len(p.Modules))
}

func runTUI(configPath, startView, themeName string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if themeName == "" {
		themeName = cfg.Theme
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if startView == "" {
		startView = cfg.DefaultView
	}
	switch store.View(startView) {
	case store.ViewTree, store.ViewKanban, store.ViewTimeline, store.ViewFlowchart:
		application.Store.SetCurrentView(store.View(startView))
	}

	p := tea.NewProgram(
		ui.NewRootModel(application),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
