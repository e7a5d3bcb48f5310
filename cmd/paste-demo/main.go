// README: One-shot CLI that sends pasted trip text through an import variant and prints the items.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/ai"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/config"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/maps"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
)

func main() {
	variantName := flag.String("variant", pasteimport.VariantExtract, "import variant: extract or plan")
	text := flag.String("text", "", "trip text to import")
	file := flag.String("file", "", "read trip text from this file instead of -text")
	destination := flag.String("destination", "", "tripContext.destination")
	useSDK := flag.Bool("sdk", false, "call Gemini through the official SDK instead of REST")
	geocode := flag.Bool("geocode", false, "resolve item locations with Google Maps (needs GOOGLE_MAPS_API_KEY)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AI.GeminiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	if *file != "" {
		b, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read %s: %v", *file, err)
		}
		*text = string(b)
	}
	if strings.TrimSpace(*text) == "" && *variantName == pasteimport.VariantExtract {
		log.Fatal("nothing to import: pass -text or -file")
	}

	var variant pasteimport.Variant
	switch *variantName {
	case pasteimport.VariantExtract:
		variant = pasteimport.ExtractVariant(cfg.AI.Extract.Model, cfg.AI.Extract.Temperature)
	case pasteimport.VariantPlan:
		variant = pasteimport.PlanVariant(cfg.AI.Plan.Model, cfg.AI.Plan.Temperature, cfg.AI.Plan.RejectDuplicateLocations)
	default:
		log.Fatalf("unknown variant %q", *variantName)
	}

	var provider ai.Provider = ai.NewGeminiClient(cfg.AI.BaseURL, cfg.AI.Timeout)
	if *useSDK {
		provider = ai.NewGeminiSDKClient()
	}

	body, err := json.Marshal(map[string]any{
		"text":        *text,
		"tripContext": map[string]string{"destination": *destination},
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AI.Timeout)
	defer cancel()

	svc := pasteimport.NewService(provider, cfg.AI.GeminiKey, variant)
	res, err := svc.Import(ctx, pasteimport.Input{Body: body, RequestID: uuid.NewString()})
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	var geocoder *maps.GeocodeService
	if *geocode {
		if cfg.Maps.APIKey == "" {
			log.Fatal("GOOGLE_MAPS_API_KEY environment variable not set")
		}
		geocoder, err = maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("%d item(s)\n", len(res.Items))
	for i, raw := range res.Items {
		item, err := pasteimport.DecodeItem(raw)
		if err != nil {
			fmt.Printf("%2d. (unreadable item: %v)\n", i+1, err)
			continue
		}
		fmt.Printf("%2d. [%s] %s\n", i+1, item.Kind, item.Title)
		if item.Location != "" {
			fmt.Printf("    at: %s\n", item.Location)
		}
		if item.StartTime != nil {
			fmt.Printf("    from: %s\n", formatTime(*item.StartTime))
		}
		if item.EndTime != nil {
			fmt.Printf("    to:   %s\n", formatTime(*item.EndTime))
		}
		if item.Kind == pasteimport.KindFlight {
			fmt.Printf("    flight: %s %s -> %s\n", item.FlightNumber, item.FlightFromCode, item.FlightToCode)
		}
		if geocoder != nil && item.Location != "" {
			p, err := geocoder.Resolve(ctx, item.Location)
			if err != nil {
				fmt.Printf("    geocode: %v\n", err)
				continue
			}
			fmt.Printf("    geocode: %s (%.5f, %.5f)\n", p.Address, p.Lat, p.Lng)
		}
	}
}

func formatTime(v string) string {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format("Mon Jan 2 15:04")
	}
	return v
}
