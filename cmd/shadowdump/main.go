// shadowdump prints the field offsets of the shadow catalog for a
// target platform, as a table or as Go or C source.
package main

import (
	"fmt"
	"os"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = newRootCmd(cfg, nil).Execute()
	if err != nil {
		os.Exit(1)
	}
}
