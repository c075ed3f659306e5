// apps/go-server/main.go
//
// Entry point for the games binary. See root.go for the command tree.

package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
