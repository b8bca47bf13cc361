package main

import (
	"fmt"
	"os"

	oasdrift "github.com/erraggy/oasdrift"
	"github.com/erraggy/oasdrift/cmd/oasdrift/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(oasdrift.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "check":
		if err := commands.HandleCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "scan":
		if err := commands.HandleScan(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands lists every command suggestCommand may offer.
var knownCommands = []string{"check", "scan", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or the empty string when nothing is close enough to be a likely typo.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasdrift - OpenAPI drift detection for Go

Usage:
  oasdrift <command> [options]

Commands:
  check       Check Go handlers against the parameters an OpenAPI contract documents
  scan        List the annotated HTTP handlers found in Go source
  mcp         Run the Model Context Protocol server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasdrift check openapi.yaml
  oasdrift check --dir ./internal/api openapi.yaml
  oasdrift scan ./...
  cat openapi.yaml | oasdrift check -q -

Run 'oasdrift <command> --help' for more information on a command.`)
}
