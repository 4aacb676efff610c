package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"coursecraft/internal/adapters/httpapi"
	"coursecraft/internal/adapters/sqlite"
	"coursecraft/internal/adapters/tui"
	"coursecraft/internal/config"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

func main() {
	courseFlag := flag.Int64("course", 0, "course id to open (defaults to the first course)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		fatal(err)
	}
	defer closeStore()

	ctx := context.Background()
	courseID := *courseFlag
	if courseID == 0 {
		courses, err := store.ListCourses(ctx)
		if err != nil {
			fatal(err)
		}
		if len(courses) == 0 {
			fatal(fmt.Errorf("no courses found; create one with coursecraft-cli add course"))
		}
		courseID = courses[0].ID
	}

	content, err := store.LoadCourse(ctx, courseID)
	if err != nil {
		fatal(err)
	}
	tree := domain.Build(content)

	app := tui.NewApp(store, tree, cfg.DragThreshold)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func openStore(cfg *config.Config) (ports.CourseStore, func(), error) {
	if cfg.Store == config.StoreRemote {
		return httpapi.New(cfg.APIURL, cfg.APIToken), func() {}, nil
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Warn("closing local store")
		}
	}, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
