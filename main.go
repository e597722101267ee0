package main

import "github.com/gaurav-prasanna/jxrprism/cmd"

func main() {
	cmd.Execute()
}
