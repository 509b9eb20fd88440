package main

import (
	"context"
	"fmt"
	"os"

	"github.com/okurashoichi/serena-vbs/lspserver"
	"github.com/okurashoichi/serena-vbs/vbslogging"
	"github.com/okurashoichi/serena-vbs/workspace"
	"github.com/spf13/cobra"
)

const exitOnStartupError = 3

var (
	workspaceRoot string
	encodingName  string
	configPath    string
	logLevel      int

	rootCmd = &cobra.Command{
		Use:   "vbslsp",
		Short: "Language server for Classic ASP and VBScript",
		Run:   func(c *cobra.Command, args []string) {},
	}
)

func init() {
	rootCmd.Flags().StringVar(&workspaceRoot, "workspace-root", "", "project root to scan on startup; defaults to the client's initialize rootUri")
	rootCmd.Flags().StringVar(&encodingName, "encoding", "", "source encoding: utf-8 (default) or shift_jis/cp932")
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file; CLI flags override its values")
	rootCmd.Flags().IntVar(&logLevel, "verbose", 0, "logrus level for logging output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	log := vbslogging.New(logLevel)

	fileCfg, err := workspace.LoadConfig(configPath)
	if err != nil {
		log.Error(err, "failed to load config file", "path", configPath)
		os.Exit(exitOnStartupError)
	}

	cfg := fileCfg.Merge(workspace.Config{
		WorkspaceRoot: workspaceRoot,
		Encoding:      encodingName,
		Verbose:       logLevel > 0,
	})

	if cfg.WorkspaceRoot != "" {
		if info, statErr := os.Stat(cfg.WorkspaceRoot); statErr != nil || !info.IsDir() {
			log.Error(statErr, "workspace root does not exist", "path", cfg.WorkspaceRoot)
			os.Exit(exitOnStartupError)
		}
	}

	dec := workspace.NewDecoder(cfg.Encoding)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := lspserver.New(log, cfg.WorkspaceRoot, dec)
	server.ScanConfig = cfg

	if err := server.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil {
		log.Error(err, "server exited with error")
		os.Exit(exitOnStartupError)
	}
}
