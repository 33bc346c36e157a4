package main

import (
	comiccmd "github.com/nini1972/comicbook-creator/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	comiccmd.SetVersionInfo(version, commit)
	comiccmd.Execute()
}
