package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"versegen/internal/adapter/repo"
	"versegen/internal/domain"
	"versegen/internal/infra"
)

func main() {
	var (
		idFlag    string
		emailFlag string
		tierFlag  string
	)

	flag.StringVar(&idFlag, "id", "", "profile ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "account email to update")
	flag.StringVar(&tierFlag, "tier", "", "tier to assign (free, paid, elite)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	tier, ok := domain.ParseTier(tierFlag)
	if !ok {
		exitWithError(fmt.Errorf("unsupported tier %q (free, paid or elite)", tierFlag))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "usertier").Logger()
	profiles := repo.NewProfileRepo(infra.NewSQLRunner(pool, logger))

	if userID == "" {
		lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
		userID, err = profiles.IDByEmail(lookupCtx, email)
		cancelLookup()
		if err != nil {
			exitWithError(fmt.Errorf("failed to resolve profile: %w", err))
		}
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()
	profile, err := profiles.SetTier(updateCtx, userID, tier)
	if err != nil {
		exitWithError(fmt.Errorf("failed to update tier: %w", err))
	}

	fmt.Printf("Profile %s updated to tier %s\n", profile.ID, profile.Tier)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
