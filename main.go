// main.go - Application entry point
package main

import "tile-extract/cmd"

func main() {
	cmd.Execute()
}
