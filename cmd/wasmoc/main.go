// Command wasmoc compiles a WebAssembly binary to native machine code and
// reports what it produced. It never runs the result — there is no
// instantiation or execution path in this module.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/appcypher/wasmo"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

// doMain is separated from main for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer) int {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")
	flag.Parse()

	if help || flag.NArg() != 1 {
		printUsage(stdErr)
		if help {
			return 0
		}
		return 1
	}

	path := flag.Arg(0)
	bin, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdErr, "wasmoc: reading %s: %v\n", path, err)
		return 1
	}

	container, err := wasmo.Compile(bin)
	if err != nil {
		fmt.Fprintf(stdErr, "wasmoc: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdOut, "compiled %s: %d function(s), %d export(s)\n",
		path, len(container.Data.Locals.Functions), len(container.Data.Exports))
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "wasmoc compiles a WebAssembly binary to native machine code.")
	fmt.Fprintln(w, "usage: wasmoc [-h] <path-to-wasm-file>")
}
