/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/recordstore/cmd/recordctl/cmd"
	"github.com/ssargent/recordstore/pkg/di"
)

func main() {
	container := di.NewContainer()
	cmd.SetContainer(container)

	cmd.Execute()
}
