// casematch-seed populates the topic-vectors table with generated case rows.
// Intended for local development and demos:
//
//	go run ./cmd/casematch-seed -count 200 -dim 10
//
// Rows are written as one hash per case at <prefix><table>:<case_number>, the
// layout the API reads. The generator is deterministic for a given -seed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tracknorth/casematch/internal/db"
	dbRedis "github.com/tracknorth/casematch/internal/db/redis"
)

var (
	titles = []string{
		"Unable to log into VPN",
		"Printer not responding",
		"Email sync stuck on mobile",
		"Laptop fan running constantly",
		"Shared drive access denied",
		"Password reset loop",
		"Application crashes on startup",
		"Slow network in meeting room",
		"Two-factor prompt never arrives",
		"Monitor flickers after update",
	}

	resolutions = []string{
		"Reinstalled client and cleared cached credentials",
		"Replaced toner and power-cycled device",
		"Removed and re-added account profile",
		"Updated BIOS and reseated thermal pad",
		"Granted group membership via access request",
		"Unlocked account and forced password change",
		"Rolled back to previous application version",
		"Rebooted access point and rebalanced channels",
	}

	groups = []string{
		"Network Operations",
		"Desktop Support",
		"Identity & Access",
		"Application Support",
		"Field Services",
	}

	caseTypes = []string{"incident", "request", "problem"}

	statuses = []string{"closed", "resolved", "open"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		addr         = flag.String("addr", "localhost:6379", "table store address")
		password     = flag.String("password", "", "table store password")
		table        = flag.String("table", "topic_vectors", "table name")
		prefix       = flag.String("prefix", "casematch:", "key prefix")
		vectorPrefix = flag.String("vector-prefix", "topic_", "vector column prefix")
		count        = flag.Int("count", 100, "number of case rows to generate")
		dim          = flag.Int("dim", 10, "feature vector dimensionality")
		seed         = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	if *count < 1 {
		return fmt.Errorf("count must be positive, got %d", *count)
	}
	if *dim < 1 {
		return fmt.Errorf("dim must be positive, got %d", *dim)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{*addr},
		Password: *password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	items := make([]db.HashSetItem, 0, *count)
	rowPrefix := *prefix + *table + ":"

	for i := 0; i < *count; i++ {
		caseNumber := fmt.Sprintf("CS%08d", 10000000+i)
		items = append(items, db.HashSetItem{
			Key:    rowPrefix + caseNumber,
			Fields: caseRow(rng, caseNumber, *vectorPrefix, *dim),
		})
	}

	start := time.Now()
	if err := store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	log.Printf("seeded %d case rows (dim=%d) under %s* in %s",
		*count, *dim, rowPrefix, time.Since(start).Round(time.Millisecond))
	return nil
}

// caseRow generates one table row: identity, display metadata, and a feature
// vector with components in [0.1, 0.9] rounded to 4 decimal places.
func caseRow(rng *rand.Rand, caseNumber, vectorPrefix string, dim int) map[string]string {
	title := pick(rng, titles)
	fields := map[string]string{
		"sys_id":           uuid.NewString(),
		"case_number":      caseNumber,
		"title":            title,
		"description":      title + " reported by end user",
		"resolution":       pick(rng, resolutions),
		"assignment_group": pick(rng, groups),
		"case_type":        pick(rng, caseTypes),
		"status":           pick(rng, statuses),
	}

	for i := 1; i <= dim; i++ {
		v := 0.1 + rng.Float64()*0.8
		fields[vectorPrefix+strconv.Itoa(i)] = strconv.FormatFloat(round4(v), 'f', -1, 64)
	}

	return fields
}

func pick(rng *rand.Rand, options []string) string {
	return strings.TrimSpace(options[rng.Intn(len(options))])
}

func round4(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}
