package main

import (
	"fmt"
	"io"
)

func main() {
	Execute()
}

func printBanner(w io.Writer) {
	banner := `
 ____  _                 _      _   _       _
/ ___|(_)_ __ ___  _ __ | | ___| \ | | ___ | |_ ___
\___ \| | '_ ' _ \| '_ \| |/ _ \  \| |/ _ \| __/ _ \
 ___) | | | | | | | |_) | |  __/ |\  | (_) | ||  __/
|____/|_|_| |_| |_| .__/|_|\___|_| \_|\___/ \__\___|
                  |_|
           Score Editing CLI Tool
`
	fmt.Fprintln(w, banner)
}
