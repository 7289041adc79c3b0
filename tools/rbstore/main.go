package main

import "fmt"
import "os"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "load":
		parseLoadopts(args)
		os.Exit(doLoad())
	case "verify":
		parseVerifyopts(args)
		os.Exit(doVerify())
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rbstore <load|verify> [options]\n")
}
