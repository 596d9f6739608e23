// Command fusekafkactl starts, stops and restarts the fuse_kafka worker fleet.
//
// Usage:
//
//	fusekafkactl start|stop|restart|status
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
