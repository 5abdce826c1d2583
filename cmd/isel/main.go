package main

import (
	"fmt"
	"os"

	"github.com/chalonverse/llvm/dag"
	"github.com/chalonverse/llvm/isel"
	"github.com/chalonverse/llvm/mips"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("isel [file]")
		return
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	g, err := dag.Parse(f)
	f.Close()
	if err != nil {
		fmt.Println(err)
		return
	}
	isel.SelectBlock(g, mips.New(), nil, isel.Options{Trace: os.Stderr})
	fmt.Print(g)
}
