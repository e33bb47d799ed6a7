// Lists the example programs shipped in the examples directory and how to
// run them.
package main

import (
	"fmt"
	"os"
	"sort"
)

const examplesDir = "./examples"

func main() {
	entries, err := os.ReadDir(examplesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read examples directory %s: %v\n", examplesDir, err)
		os.Exit(1)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	fmt.Println("To run an example, run:")
	fmt.Printf("\tgo run ./examples/<example>\n\n")
	fmt.Println("where <example> can be one of these options:")
	for _, name := range names {
		fmt.Printf("\t%s\n", name)
	}
}
