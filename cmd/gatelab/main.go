// Command gatelab runs the logic gate sandbox as an HTTP service or in the
// terminal, and exposes the gate catalog and challenge checker as
// one-shot commands.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
