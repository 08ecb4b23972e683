package main

import "github.com/tripwing/tripwing/cmd"

func main() {
	cmd.Execute()
}
