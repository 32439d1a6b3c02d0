package iocache

import (
	"fmt"

	"github.com/huangsam/loadout/schema"
)

// PrintPinnedStatus prints pinned store status information.
func PrintPinnedStatus(status schema.PinnedStatus) {
	fmt.Printf("Pinned Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Pinned: %d\n", status.TotalPinned)
	if status.TotalPinned > 0 {
		fmt.Printf("Achieving Targets: %d\n", status.Achieving)
		fmt.Printf("Newest Pin: %s\n", status.NewestPin.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Pin: %s\n", status.OldestPin.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSize)
}
