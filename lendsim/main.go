// Package main runs the lendsim command-line tool.
package main

import "github.com/sarchlab/lendsim/lendsim/cmd"

func main() {
	cmd.Execute()
}
