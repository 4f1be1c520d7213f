package main

import (
	"fmt"
	"os"
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(fmt.Sprintf("%s: %v", msg, err)))
	os.Exit(1)
}
