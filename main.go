/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/goppk/ppkutil/cmd"

func main() {
	cmd.Execute()
}
