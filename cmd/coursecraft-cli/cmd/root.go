package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"coursecraft/internal/adapters/httpapi"
	"coursecraft/internal/adapters/sqlite"
	"coursecraft/internal/config"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

var (
	storeFlag  string
	courseFlag int64
	verbose    bool

	store      ports.CourseStore
	closeStore func()
)

var rootCmd = &cobra.Command{
	Use:   "coursecraft-cli",
	Short: "CLI for editing course hierarchies",
	Long: `coursecraft-cli edits the Course > Topic > SubTopic > Lesson hierarchy
of a course from the command line.

It provides commands to display the tree, move nodes between parents,
add, rename and delete nodes, and list the lesson schedule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if storeFlag != "" {
			cfg.Store = storeFlag
		}

		if cfg.Store == config.StoreRemote {
			store = httpapi.New(cfg.APIURL, cfg.APIToken)
			closeStore = func() {}
			return nil
		}
		local, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		store = local
		closeStore = func() { local.Close() }
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeStore != nil {
			closeStore()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "backend: local or remote (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&courseFlag, "course", 0, "course id (defaults to the first course)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// GetStore returns the initialized course store
func GetStore() ports.CourseStore {
	return store
}

// courseTree loads the selected course and builds its tree.
func courseTree(ctx context.Context) (*domain.Tree, error) {
	id := courseFlag
	if id == 0 {
		courses, err := store.ListCourses(ctx)
		if err != nil {
			return nil, err
		}
		if len(courses) == 0 {
			return nil, fmt.Errorf("no courses found; create one with: coursecraft-cli add course <title>")
		}
		id = courses[0].ID
	}

	content, err := store.LoadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.Build(content), nil
}

// findNode resolves a kind name and entity id to a node of the tree.
func findNode(tree *domain.Tree, kindName string, id int64) (*domain.Node, error) {
	kind := domain.ParseKind(kindName)
	if kind == domain.KindUnknown {
		return nil, fmt.Errorf("unknown kind %q (want topic, subtopic, or lesson)", kindName)
	}
	node, err := tree.FindByEntityID(kind, id)
	if err != nil {
		return nil, fmt.Errorf("no %s with id %d", kind, id)
	}
	return node, nil
}
