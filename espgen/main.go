package main

import "github.com/kamalavk/esp/espgen/cmd"

func main() {
	cmd.Execute()
}
