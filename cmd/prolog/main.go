// Command prolog loads a source file and runs a single query against it,
// printing every solution in order.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gitrdm/sldprolog/pkg/prolog"
)

func main() {
	file := flag.String("file", "", "Prolog source file to consult")
	query := flag.String("query", "", `query to run, e.g. "parent(tom, X)"`)
	maxDepth := flag.Int("max-depth", 0, "maximum resolution depth (0 = unbounded)")
	flag.Parse()

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: prolog -file program.pl -query \"goal(X)\"")
		os.Exit(2)
	}

	if err := run(*file, *query, *maxDepth); err != nil {
		fmt.Fprintln(os.Stderr, "prolog:", err)
		os.Exit(1)
	}
}

func run(file, query string, maxDepth int) error {
	e, err := prolog.New(prolog.WithMaxResolutionDepth(maxDepth))
	if err != nil {
		return err
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := e.Consult(f); err != nil {
			return err
		}
	}

	src := "?- " + strings.TrimSuffix(strings.TrimSpace(query), ".") + "."
	sentence, err := e.ParseQuery(src)
	if err != nil {
		return err
	}

	it, err := e.Resolve(context.Background(), sentence)
	if err != nil {
		return err
	}

	ctx := context.Background()
	count := 0
	for {
		sol, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		count++
		fmt.Printf("%d. %s\n", count, formatSolution(sol))
	}

	if count == 0 {
		fmt.Println("false.")
	}
	return nil
}

func formatSolution(sol prolog.Solution) string {
	if len(sol) == 0 {
		return "true."
	}
	parts := make([]string, len(sol))
	for i, b := range sol {
		parts[i] = fmt.Sprintf("%s = %s", b.Name, b.Term.String())
	}
	return strings.Join(parts, ", ")
}
