// Command patchnet evaluates a connectivity metric on a landscape graph and,
// optionally, the delta of that metric for every patch.
//
//	patchnet -i forest.yaml -m PC_d1000_p0.05_beta1
//	patchnet -i forest.yaml -m IIC_beta1 --delta.enabled --delta.batch 32 -o deltas.json
//
// Results are written as JSON. The exit code is 2 when the delta task
// finished with failed batches.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, pflag.ErrHelp):
	case errors.Is(err, errPartial):
		fmt.Fprintf(os.Stderr, "patchnet: %v\n", err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "patchnet: %v\n", err)
		os.Exit(1)
	}
}
