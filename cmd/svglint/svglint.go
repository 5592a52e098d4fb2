// svglint is a tool that parses an SVG file and prints parse errors if
// there are any, optionally rewriting the file to its canonical
// serialisation.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/svgdiff/engine/internal/svgparse"
)

func main() {
	reformat := flag.Bool("reformat", true, "if input is valid, fix formatting errors")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.svg\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	file := flag.Arg(0)

	bs, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read SVG file: %v\n", err)
		os.Exit(1)
	}

	tr, err := svgparse.Parse(string(bs))
	if err != nil {
		fmt.Println(err)
		fmt.Println()
		fmt.Println("File has 1 error.")
		os.Exit(1)
	}

	out := []byte(svgparse.Serialize(tr, 0, nil))
	changed := !bytes.Equal(bytes.TrimSpace(bs), bytes.TrimSpace(out))

	switch {
	case !changed:
		fmt.Println("File is valid.")
	case !*reformat:
		fmt.Println("File has formatting differences, rerun with --reformat=true to fix.")
		os.Exit(1)
	default:
		if err := atomic.WriteFile(file, bytes.NewReader(out)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rewrite %q: %v\n", file, err)
			os.Exit(1)
		}
		fmt.Println("File is valid, rewrote to canonical format.")
	}
}
