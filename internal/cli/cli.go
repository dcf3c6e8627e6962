// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch and argument parsing for ollamagen.
//
// Commands:
//   ollamagen ask "question" [flags]
//   ollamagen chat [flags]
//   ollamagen embed "text" [flags]
//   ollamagen models
//   ollamagen status
//   ollamagen version
//
// Flags:
//   -m, --model NAME    Model to use (overrides config)
//   --server URL        Ollama server address (overrides OLLAMA_HOST)
//   --system TEXT       System instruction for ask/chat
//   --plain             Disable markdown rendering
//   --stats             Print token usage after the response
//   --json              JSON output (embed)
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies which subcommand was requested.
type Command int

const (
	CmdChat Command = iota
	CmdAsk
	CmdEmbed
	CmdModels
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed command-line options shared by all commands.
type Args struct {
	Model  string // -m / --model
	Server string // --server
	System string // --system
	Plain  bool   // --plain
	Stats  bool   // --stats
	JSON   bool   // --json
	Query  string // joined positional arguments
}

// =============================================================================
// PARSING
// =============================================================================

// Parse interprets os.Args into a command and its options. An unknown
// command falls back to help.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is the testable core of Parse.
func ParseArgs(argv []string) (Command, Args) {
	var args Args

	var positional []string
	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "-m" || arg == "--model":
			if i+1 < len(argv) {
				args.Model = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--model="):
			args.Model = strings.TrimPrefix(arg, "--model=")
		case arg == "--server":
			if i+1 < len(argv) {
				args.Server = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--server="):
			args.Server = strings.TrimPrefix(arg, "--server=")
		case arg == "--system":
			if i+1 < len(argv) {
				args.System = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--system="):
			args.System = strings.TrimPrefix(arg, "--system=")
		case arg == "--plain":
			args.Plain = true
		case arg == "--stats":
			args.Stats = true
		case arg == "--json":
			args.JSON = true
		case arg == "-h" || arg == "--help":
			return CmdHelp, args
		default:
			positional = append(positional, arg)
		}
		i++
	}

	if len(positional) == 0 {
		return CmdChat, args
	}

	cmd := strings.ToLower(positional[0])
	args.Query = strings.Join(positional[1:], " ")

	switch cmd {
	case "chat":
		return CmdChat, args
	case "ask":
		return CmdAsk, args
	case "embed":
		return CmdEmbed, args
	case "models", "list":
		return CmdModels, args
	case "status", "s":
		return CmdStatus, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		// Bare "ollamagen how do I ...?" reads naturally as an ask.
		args.Query = strings.Join(positional, " ")
		return CmdAsk, args
	}
}

// =============================================================================
// HELP / VERSION
// =============================================================================

// HandleVersion prints build information.
func HandleVersion() {
	fmt.Printf("ollamagen %s (%s, built %s)\n", Version, GitCommit, BuildDate)
}

// HandleHelp prints command usage.
func HandleHelp() {
	fmt.Println(TitleStyle.Render("ollamagen") + " - local model content generation via Ollama")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ollamagen chat                 Interactive chat session")
	fmt.Println("  ollamagen ask \"question\"       One-shot generation")
	fmt.Println("  ollamagen embed \"text\"         Embedding vector for text")
	fmt.Println("  ollamagen models               List local models")
	fmt.Println("  ollamagen status               Check the Ollama server")
	fmt.Println("  ollamagen version              Print version")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -m, --model NAME    Model to use (overrides config)")
	fmt.Println("  --server URL        Ollama server address (overrides OLLAMA_HOST)")
	fmt.Println("  --system TEXT       System instruction")
	fmt.Println("  --plain             Disable markdown rendering")
	fmt.Println("  --stats             Print token usage after the response")
	fmt.Println("  --json              JSON output (embed)")
}

// exitErr prints a styled error and exits non-zero.
func exitErr(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
