package main

import (
	"github.com/yeisme/covgap/cmd"
)

func main() {
	cmd.Execute()
}
