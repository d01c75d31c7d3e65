/*
	Copyright 2024 Racer Ready
*/

package main

import "github.com/racerready/racerready-manager-go/cmd"

func main() {
	cmd.Execute()
}
