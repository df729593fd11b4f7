package main

import (
	"os"
	"strconv"
)

// columnsEnv reads $COLUMNS, which shells export for non-tty pipes.
func columnsEnv() int {
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
