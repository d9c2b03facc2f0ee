// Command rrsched simulates Round-Robin CPU scheduling.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/rrsched/rrsched/cmd"
)

func main() {
	code := cmd.Execute()

	atexit.Exit(code)
}
