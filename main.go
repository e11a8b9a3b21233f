package main

import "github.com/dfir-tools/sqltriage/cmd"

func main() {
	cmd.Execute()
}
