// Command calibrate compares catalog base prices against live Amadeus fares
// and reports reverse-route gaps. It is an offline maintenance tool: run it
// by hand, review the output, then update the dataset.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/joho/godotenv"

	"skyfare/catalog"
	"skyfare/services"
)

func main() {
	limit := flag.Int("limit", 10, "max routes to price-check against the live API")
	gapsOnly := flag.Bool("gaps", false, "report reverse-route gaps and exit")
	date := flag.String("date", "", "departure date for live quotes (YYYY-MM-DD, default 30 days out)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	table, err := catalog.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load route catalog: %v", err)
	}
	fmt.Printf("Catalog %s: %d routes\n\n", table.Version(), table.Len())

	reportGaps(table)
	if *gapsOnly {
		return
	}

	quoteDate := *date
	if quoteDate == "" {
		quoteDate = time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	}

	services.InitAmadeus()
	client := services.GetAmadeusClient()
	if !client.Configured() {
		fmt.Println("Amadeus credentials not set; skipping live price check.")
		return
	}

	calibrate(table, client, quoteDate, *limit)
}

func reportGaps(table *catalog.Table) {
	gaps := table.MissingReverse()
	if len(gaps) == 0 {
		fmt.Println("No reverse-route gaps.")
		return
	}

	fmt.Printf("%d routes without a reverse entry:\n", len(gaps))
	for _, r := range gaps {
		rev := catalog.SynthesizeReverse(r)
		fmt.Printf("  %s-%s missing; suggested mirror: %s-%s %s $%.0f x%d/day\n",
			r.From, r.To, rev.From, rev.To, rev.NominalDuration, rev.BasePrice, rev.DailyFrequency)
	}
	fmt.Println()
}

func calibrate(table *catalog.Table, client *services.AmadeusClient, date string, limit int) {
	fmt.Printf("Live price check for %s (up to %d routes):\n", date, limit)

	checked := 0
	for _, route := range table.Routes() {
		if checked >= limit {
			break
		}

		live, err := client.CheapestFare(route.From, route.To, date)
		if err != nil {
			log.Printf("⚠️  %s-%s: %v", route.From, route.To, err)
			continue
		}
		checked++

		delta := (route.BasePrice - live) / live * 100
		line := fmt.Sprintf("  %s-%s catalog $%.0f live $%.0f (%+.0f%%)",
			route.From, route.To, route.BasePrice, live, delta)
		if math.Abs(delta) > 25 {
			line += fmt.Sprintf("  → suggest $%.0f", catalog.RoundToFive(live))
		}
		fmt.Println(line)

		// Stay under the free-tier rate limit.
		time.Sleep(500 * time.Millisecond)
	}

	if checked == 0 {
		fmt.Println("  no routes could be priced")
	}
}
