package main

import "github.com/mehranjafarii/heat-simulation-fdm/cmd"

func main() {
	cmd.Execute()
}
