/*
Lunfardo runs Lunfardo scripts, either a single file, an inline command
string, or an interactive REPL.

Usage:

	lunfardo [flags] [file]

The flags are:

	-c, --command COMMANDS
		Evaluate the given statement(s) immediately and exit. Multiple
		statements can be separated by the ";" character.

	-d, --direct
		Force reading directly from the console instead of using GNU
		readline based routines for reading REPL input, even when attached
		to a tty.

	--config FILE
		Load an optional .lunfardorc.toml config file carrying default
		import search paths and library whitelist overrides. Defaults to
		".lunfardorc.toml" in the current directory if present.

With no file and no --command, lunfardo starts an interactive REPL with
prompt "Lunfardo > ". Blank lines re-prompt; otherwise each line is
evaluated and its result printed. Ctrl-D ends the session.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	lunfardoengine "github.com/lunfardo-lang/lunfardo"
	"github.com/lunfardo-lang/lunfardo/internal/lunconfig"
	_ "github.com/lunfardo-lang/lunfardo/internal/lunlib"
)

const (
	exitSuccess = iota
	exitRuntimeError
	exitInitError
)

var (
	returnCode   = exitSuccess
	forceDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startCommand = pflag.StringP("command", "c", "", "Evaluate the given statement(s) immediately and exit. Multiple statements can be separated by \";\"")
	configFile   = pflag.String("config", ".lunfardorc.toml", "Path to an optional .lunfardorc.toml config file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	cfg, cfgErr := lunconfig.Load(*configFile)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", cfgErr.Error())
		returnCode = exitInitError
		return
	}
	cfg.Apply()

	eng, initErr := lunfardoengine.New(os.Stdin, os.Stdout, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = exitInitError
		return
	}
	defer eng.Close()

	if *startCommand != "" {
		cmds := strings.Split(*startCommand, ";")
		if err := eng.RunCommands(cmds); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = exitRuntimeError
		}
		return
	}

	if pflag.NArg() > 0 {
		if err := eng.RunFile(pflag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = exitRuntimeError
		}
		return
	}

	if err := eng.RunREPL(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = exitRuntimeError
	}
}
