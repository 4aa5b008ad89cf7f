package main

import "equipment-validator/cmd"

func main() {
	cmd.Execute()
}
