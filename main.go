package main

import "github.com/Owenun/Windy/cmd"

func main() {
	cmd.Execute()
}
