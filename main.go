// ABOUTME: Entry point for the catalogctl CLI
// ABOUTME: Terminal front end for the product/category catalog backend

package main

import (
	"fmt"
	"os"

	"catalogctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
