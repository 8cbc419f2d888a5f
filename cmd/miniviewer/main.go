package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iroll/miniviewer/internal/config"
	"github.com/iroll/miniviewer/internal/gui"
	"github.com/iroll/miniviewer/internal/log"
	"github.com/iroll/miniviewer/internal/nav"
	"github.com/iroll/miniviewer/internal/session"
	"github.com/iroll/miniviewer/internal/trash"
	"github.com/iroll/miniviewer/internal/tui"
)

var (
	version = "dev"

	cfgFile string
	debug   bool
	cfg     *config.Config
)

// Entry point for the application
func main() {
	rootCmd := &cobra.Command{
		Use:   "miniviewer [path]",
		Short: "A lightweight image viewer",
		Long: `Miniviewer browses, culls, and renames folders of images,
including HEIC/HEIF, without a platform photo viewer.

With no arguments it prints this help and exits. With a file or folder
argument it opens the viewer on that path.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)
			loadConfiguration()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Launcher contract: no argument prints guidance and
				// exits cleanly without touching the filesystem.
				return cmd.Help()
			}
			return runViewer(args[0])
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/miniviewer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(setupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfiguration fills cfg from the --config flag or the default path,
// falling back to defaults with a warning when loading fails.
func loadConfiguration() {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Warnf("Could not load config: %v. Using default settings.", err)
		cfg = config.New()
	}
}

// newSession builds the navigator and session for path.
func newSession(path string) (*session.Session, error) {
	t, err := trash.New(cfg.Trash.Dir)
	if err != nil {
		return nil, fmt.Errorf("trash unavailable: %w", err)
	}
	navigator, err := nav.New(cfg, t)
	if err != nil {
		return nil, err
	}
	if err := navigator.Load(path); err != nil {
		return nil, err
	}
	return session.New(cfg, navigator), nil
}

func runViewer(path string) error {
	sess, err := newSession(path)
	if err != nil {
		return err
	}
	gui.NewApp(cfg, sess).Run()
	return nil
}

// viewCmd is the explicit form of the default viewer invocation.
func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <path>",
		Short: "Open the viewer on a file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(args[0])
		},
	}
}

// browseCmd starts the terminal cull mode.
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [directory]",
		Short: "Cull a folder of images in the terminal",
		Long:  `Browse lists the folder's images for marking, trashing, and renaming without opening a window.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			sess, err := newSession(dir)
			if err != nil {
				return err
			}
			m := tui.New(sess, version)
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running terminal mode: %w", err)
			}
			return nil
		},
	}
}

// listCmd prints the resolved image set for shell pipelines.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <path>",
		Short: "Print the image set for a file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			navigator, err := nav.New(cfg, nil)
			if err != nil {
				return err
			}
			if err := navigator.Load(args[0]); err != nil {
				return err
			}
			for _, path := range navigator.Images() {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}

// setupCmd writes a starter config file.
func setupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
