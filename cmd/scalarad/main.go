// Package main provides the scalarad command-line tool.
package main

import (
	"os"

	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func main() {
	defer klog.Flush()
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}
