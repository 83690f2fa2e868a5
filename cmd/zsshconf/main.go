package main

import (
	"github.com/zmap/zsshconf/bin"
	_ "github.com/zmap/zsshconf/modules"
)

// main wraps the "true" main, bin.ZSSHConfMain(), after importing all render
// modules.
func main() {
	bin.ZSSHConfMain()
}
