package daily

import (
	"testing"
	"time"

	"github.com/VinEdw/mastermind-pvp/internal/game"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(d); got != "2026-03-01" {
		t.Fatalf("DateKey = %q", got)
	}
}

func TestSameDaySameSolution(t *testing.T) {
	morning := time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)

	a, err := game.NewGenerator(Source(morning, "salt")).Generate(6, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := game.NewGenerator(Source(evening, "salt")).Generate(6, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same date gave %v and %v", a, b)
		}
	}
}

func TestSeedDependsOnDateAndSalt(t *testing.T) {
	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a1, a2 := Seed(d, "salt")
	b1, b2 := Seed(d.AddDate(0, 0, 1), "salt")
	c1, c2 := Seed(d, "pepper")
	if a1 == b1 && a2 == b2 {
		t.Fatal("consecutive days share a seed")
	}
	if a1 == c1 && a2 == c2 {
		t.Fatal("different salts share a seed")
	}
}
