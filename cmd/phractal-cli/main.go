package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-phractal/pkg/component"
	"github.com/goliatone/go-phractal/pkg/manifest"
	"github.com/goliatone/go-phractal/pkg/render"
	"github.com/goliatone/go-phractal/pkg/sanitize"
	"github.com/goliatone/go-phractal/pkg/tui"
)

func main() {
	manifestPath := flag.String("manifest", "components.yaml", "component manifest path")
	name := flag.String("component", "", "component to render")
	valuesPath := flag.String("values", "", "JSON file with field values (prompts interactively if empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	sanitized := flag.Bool("sanitize", false, "run rendered output through the UGC sanitizer")
	flag.Parse()

	ctx := context.Background()

	store, err := manifest.LoadFile(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	if strings.TrimSpace(*name) == "" {
		log.Fatalf("Missing -component; available: %s", strings.Join(store.List(), ", "))
	}

	def, err := store.Get(*name)
	if err != nil {
		log.Fatalf("Failed to resolve component: %v", err)
	}

	values, err := loadValues(ctx, *valuesPath, def)
	if err != nil {
		log.Fatalf("Failed to collect values: %v", err)
	}

	inst, err := def.Instantiate(values)
	if err != nil {
		log.Fatalf("Failed to instantiate component: %v", err)
	}

	var options []render.Option
	if *sanitized {
		options = append(options, render.WithSanitizer(sanitize.UGC()))
	}
	renderer, err := render.New(options...)
	if err != nil {
		log.Fatalf("Failed to construct renderer: %v", err)
	}

	if *output != "" {
		if err := renderer.Save(ctx, inst, *output); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Component written to %s\n", *output)
		return
	}

	html, err := renderer.Render(ctx, inst)
	if err != nil {
		log.Fatalf("Failed to render component: %v", err)
	}
	fmt.Println(html)
}

func loadValues(ctx context.Context, path string, def *component.Definition) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return tui.NewCollector(nil).Collect(ctx, def)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}
