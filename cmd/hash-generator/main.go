// Command hash-generator prints bcrypt digests for passwords given on the
// command line, using the same hasher as the server. It is used to seed
// users directly into the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/mesto-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt work factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	hasher, err := auth.NewBcryptHasher(*cost, 1)
	if err != nil {
		slog.Error("failed to create hasher", "error", err)
		os.Exit(1)
	}

	if err := generate(context.Background(), os.Stdout, hasher, flag.Args()); err != nil {
		slog.Error("failed to generate hashes", "error", err)
		os.Exit(1)
	}
}

// generate writes one "password<TAB>digest" line per password.
func generate(ctx context.Context, w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for _, password := range passwords {
		digest, err := hasher.Hash(ctx, password)
		if err != nil {
			return fmt.Errorf("hash %q: %w", password, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", password, digest); err != nil {
			return err
		}
	}
	return nil
}
