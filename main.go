package main

import "github.com/mj1618/fontproject/cmd"

func main() {
	cmd.Execute()
}
