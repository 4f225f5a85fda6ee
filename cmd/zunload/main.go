/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/mfdata/zunload/cmd/zunload/cmd"

func main() {
	cmd.Execute()
}
