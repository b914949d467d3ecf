// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cybrota/avlplay/avl"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var version = "dev"

// loadConfigOrDefault reads the config file named by --config, falling back
// to defaults with a warning when it cannot be used.
func loadConfigOrDefault(cmd *cobra.Command) *Config {
	path, _ := cmd.Flags().GetString("config")
	config, err := LoadConfig(path)
	if err != nil {
		log.Printf("Failed to load configuration: %v. Using default settings.", err)
	}
	return config
}

// applyGameFlags lets command-line flags override the config file.
func applyGameFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	if flags.Changed("auto-balance") {
		config.Game.AutoBalance, _ = flags.GetBool("auto-balance")
	}
	if flags.Changed("max-nodes") {
		config.Game.MaxNodes, _ = flags.GetInt("max-nodes")
	}
	if flags.Changed("min") {
		config.Game.MinValue, _ = flags.GetInt("min")
	}
	if flags.Changed("max") {
		config.Game.MaxValue, _ = flags.GetInt("max")
	}
	if flags.Changed("interval") {
		config.Game.AddInterval, _ = flags.GetDuration("interval")
	}
	return config.Validate()
}

func seedFlag(cmd *cobra.Command) int64 {
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		return seed
	}
	return time.Now().UnixNano()
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("auto-balance", false, "rebalance on every insert")
	cmd.Flags().Int("max-nodes", 0, "number of random nodes added per round")
	cmd.Flags().Int("min", 0, "smallest random key")
	cmd.Flags().Int("max", 0, "largest random key")
	cmd.Flags().Duration("interval", 0, "delay between random nodes")
	cmd.Flags().Int64("seed", 0, "random seed (default: current time)")
}

func startUI(cmd *cobra.Command) {
	config := loadConfigOrDefault(cmd)
	if err := applyGameFlags(cmd, config); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if err := runBubbleTeaApp(config, seedFlag(cmd)); err != nil {
		log.Fatalf("Error running UI: %v", err)
	}
}

func main() {
	asciiLogo := `
 █████╗ ██╗   ██╗██╗     ██████╗ ██╗      █████╗ ██╗   ██╗
██╔══██╗██║   ██║██║     ██╔══██╗██║     ██╔══██╗╚██╗ ██╔╝
███████║██║   ██║██║     ██████╔╝██║     ███████║ ╚████╔╝
██╔══██║╚██╗ ██╔╝██║     ██╔═══╝ ██║     ██╔══██║  ╚██╔╝
██║  ██║ ╚████╔╝ ███████╗██║     ███████╗██║  ██║   ██║
╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝   ╚═╝
Grow, break and rebalance AVL trees in your terminal [Version: %s%s%s]

Copyright @ Naren Yellavula

`

	InitializeColors()
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Launches the AVL playground UI",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run opens the playground: random keys arrive on a timer and unbalanced nodes must be fixed by rotation`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			startUI(cmd)
		},
	}
	addGameFlags(cmdRun)

	var cmdExec = &cobra.Command{
		Use:   "exec [script]",
		Short: "Run a tree script and print the result",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Exec runs insert/rotate/balance commands from a file or from -e and prints the final tree"),
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runner := newRunnerFromFlags(cmd)
			if err := runScriptArgs(cmd, runner, args); err != nil {
				fmt.Fprintf(os.Stderr, "%s%v%s\n", Error, err, Reset)
				fmt.Println(RenderPlain(runner.Tree(), RenderOptions{Width: runner.Width}))
				os.Exit(1)
			}
			fmt.Println(RenderPlain(runner.Tree(), RenderOptions{Width: runner.Width}))
		},
	}
	addScriptFlags(cmdExec)

	var cmdCheck = &cobra.Command{
		Use:   "check [script]",
		Short: "Run a tree script and validate the resulting tree",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Check runs a script, then verifies ordering, cached heights and the AVL balance condition"),
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runner := newRunnerFromFlags(cmd)
			if err := runScriptArgs(cmd, runner, args); err != nil {
				log.Fatalf("Script failed: %v", err)
			}
			stats := collectStats(runner.Tree())
			stats.Print(os.Stdout)
			if stats.ValidErr != nil || len(stats.Unbalanced) > 0 {
				os.Exit(1)
			}
		},
	}
	addScriptFlags(cmdCheck)

	var cmdFill = &cobra.Command{
		Use:   "fill N",
		Short: "Insert N random keys and print tree statistics",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Fill inserts N unique random keys from [--min, --max] with the chosen insert mode"),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				log.Fatalf("N must be a non-negative integer, got %q", args[0])
			}
			config := loadConfigOrDefault(cmd)
			if err := applyGameFlags(cmd, config); err != nil {
				log.Fatalf("Invalid settings: %v", err)
			}
			modeName, _ := cmd.Flags().GetString("mode")
			mode, err := avl.ParseMode(modeName)
			if err != nil {
				log.Fatalf("%v", err)
			}

			keys, err := NewKeyGenerator(config.Game.MinValue, config.Game.MaxValue, seedFlag(cmd))
			if err != nil {
				log.Fatalf("%v", err)
			}
			tree := avl.New[int]()
			quiet, _ := cmd.Flags().GetBool("quiet")
			var bar *progressbar.ProgressBar
			if !quiet {
				bar = newFillBar(n, os.Stderr)
			}
			if err := fillTree(tree, keys, n, mode, bar); err != nil {
				log.Fatalf("Fill failed: %v", err)
			}
			if rebalance, _ := cmd.Flags().GetBool("rebalance"); rebalance {
				tree.RebalanceAll()
			}

			fmt.Printf("mode:       %s\n", mode)
			collectStats(tree).Print(os.Stdout)
			if show, _ := cmd.Flags().GetBool("print"); show {
				width, _ := cmd.Flags().GetInt("width")
				fmt.Println(RenderPlain(tree, RenderOptions{Width: width}))
			}
		},
	}
	addGameFlags(cmdFill)
	cmdFill.Flags().String("mode", "eager", "insert mode: eager, deferred or keyed")
	cmdFill.Flags().Bool("rebalance", false, "rebalance the whole tree after filling")
	cmdFill.Flags().Bool("print", false, "print the tree after filling")
	cmdFill.Flags().Int("width", 120, "output width for --print")
	cmdFill.Flags().BoolP("quiet", "q", false, "hide the progress bar")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Display current configuration settings",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Settings shows the configuration file, creating it with defaults when missing"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path, _ := cmd.Flags().GetString("config")
			if err := displaySettings(path); err != nil {
				log.Fatalf("Error displaying settings: %v", err)
			}
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avlplay usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the avlplay CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlplay version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "avlplay",
		Version: version,
		Long:    asciiLogo,
		Run: func(cmd *cobra.Command, args []string) {
			// Default to run command when no subcommand is provided
			startUI(cmd)
		},
	}
	addGameFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/"+configFileName+")")
	rootCmd.AddCommand(cmdRun, cmdExec, cmdCheck, cmdFill, cmdSettings, cmdUsage, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("eval", "e", "", "script text; separate commands with ';'")
	cmd.Flags().Bool("keep-going", false, "run every command and report all failures")
	cmd.Flags().Int("width", 80, "output width for printed trees")
}

func newRunnerFromFlags(cmd *cobra.Command) *ScriptRunner {
	runner := NewScriptRunner(avl.New[int](), os.Stdout)
	runner.KeepGoing, _ = cmd.Flags().GetBool("keep-going")
	runner.Width, _ = cmd.Flags().GetInt("width")
	return runner
}

// runScriptArgs runs the -e text when given, otherwise the script file
// argument, otherwise standard input.
func runScriptArgs(cmd *cobra.Command, runner *ScriptRunner, args []string) error {
	if eval, _ := cmd.Flags().GetString("eval"); eval != "" {
		if len(args) > 0 {
			return fmt.Errorf("use either -e or a script file, not both")
		}
		return runner.Run(strings.NewReader(eval))
	}
	if len(args) == 1 && args[0] != "-" {
		return RunFile(runner, args[0])
	}
	return runner.Run(os.Stdin)
}
