// Command crunch2d packs directories of PNG sprites into texture atlases and
// writes the sprite rectangles as binary, XML or JSON data files.
//
//	crunch2d bin/atlases/atlas assets/characters,assets/tiles -p -t -v -u -r
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
