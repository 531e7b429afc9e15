// Command jsastac is the JSasta ahead-of-time compiler driver.
package main

import "github.com/nanov/jsasta/pkg/cli"

func main() {
	cli.Run()
}
