// Command labelctl explodes product trees and prints labels without running
// the API. Items come from SAP or from an offline YAML catalog.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
