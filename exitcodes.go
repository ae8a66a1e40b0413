package main

import "github.com/google/subcommands"

// Exit codes follow the clox CLI convention: 0 success, 64
// usage error, 65 a compile-time error, 70 a runtime error, 74 an I/O
// failure reading the source file.
const (
	exitUsage   subcommands.ExitStatus = 64
	exitCompile subcommands.ExitStatus = 65
	exitRuntime subcommands.ExitStatus = 70
	exitIO      subcommands.ExitStatus = 74
)
