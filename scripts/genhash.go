//go:build ignore

// genhash prints a bcrypt hash for seeding users by hand:
//
//	go run scripts/genhash.go -cost 12 'password'
package main

import (
	"flag"
	"fmt"
	"os"

	"hireova-backend/pkg/security"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost (BCRYPT_ROUNDS)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost n] password...")
		os.Exit(2)
	}

	for _, pass := range flag.Args() {
		hash, err := security.HashPassword(pass, *cost)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println(hash)
	}
}
