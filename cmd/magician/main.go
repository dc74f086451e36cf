package main

import (
	"fmt"
	"os"
	"strings"

	. "github.com/cricklet/magician/internal/helpers"
	"github.com/pkg/profile"
)

const usage = `usage:
  magician generate [rook|bishop|all] [attempts=N] [minBits=N] [maxBits=N] [seed=N] [dir=PATH] [store=PATH] [profile]
  magician verify [dir=PATH]
  magician bench [dir=PATH] [n=N] [profile]
  magician show <piece> <square> [blockers...] [dir=PATH]`

var commands = map[string]func(args []string) Error{
	"generate": runGenerate,
	"verify":   runVerify,
	"bench":    runBench,
	"show":     runShow,
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	command, ok := commands[args[0]]
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown command:", args[0])
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/Magician" + strings.ToUpper(args[0][:1]) + args[0][1:]
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}

	err := command(args[1:])
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
