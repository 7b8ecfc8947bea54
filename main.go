package main

import "github.com/engineeringstudentstrieste/est-services/cmd"

func main() {
	cmd.Execute()
}
