package main

import "github.com/sjothen/kuao/cmd"

func main() {
	cmd.Execute()
}
