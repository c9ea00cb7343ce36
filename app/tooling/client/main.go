// This program provides a command line participant client for the
// simulation engine.
package main

import "github.com/chainlab/classroom/app/tooling/client/cmd"

func main() {
	cmd.Execute()
}
