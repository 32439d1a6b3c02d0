// main is the entry point for the loadout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/loadout/cmd"
	"github.com/huangsam/loadout/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error stopping profiling:", stopErr)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
