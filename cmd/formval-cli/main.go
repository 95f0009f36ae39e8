package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-formval/pkg/clientside"
	"github.com/goliatone/go-formval/pkg/messages"
	"github.com/goliatone/go-formval/pkg/openapi"
)

func main() {
	source := flag.String("source", "", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID (prompted when empty)")
	catalogPath := flag.String("messages", "", "optional YAML message catalog")
	format := flag.String("format", "attrs", "output format: attrs or json")
	flag.Parse()

	if strings.TrimSpace(*source) == "" {
		log.Fatalf("-source is required")
	}

	raw, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("Failed to read source: %v", err)
	}

	ctx := context.Background()
	adapter := openapi.New(openapi.Options{})

	operation := strings.TrimSpace(*opID)
	if operation == "" {
		operation, err = pickOperation(ctx, adapter, raw)
		if err != nil {
			log.Fatalf("Failed to select operation: %v", err)
		}
	}

	md, err := adapter.Metadata(ctx, raw, operation)
	if err != nil {
		log.Fatalf("Failed to build metadata: %v", err)
	}

	var contextOptions []clientside.ContextOption
	if *catalogPath != "" {
		catalog, err := messages.LoadCatalog(*catalogPath)
		if err != nil {
			log.Fatalf("Failed to load message catalog: %v", err)
		}
		contextOptions = append(contextOptions, clientside.WithMessageCatalog(catalog))
	}

	output := make(map[string]map[string]string)
	for _, prop := range md.Properties() {
		attrs := clientside.Attributes(prop, nil, contextOptions...)
		if len(attrs) == 0 {
			continue
		}
		output[prop.Property()] = attrs
	}

	switch *format {
	case "json":
		payload, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode output: %v", err)
		}
		fmt.Println(string(payload))
	default:
		printAttributes(output)
	}
}

func pickOperation(ctx context.Context, adapter *openapi.Adapter, raw []byte) (string, error) {
	refs, err := adapter.Operations(ctx, raw)
	if err != nil {
		return "", err
	}
	choices := make([]string, 0, len(refs))
	for _, ref := range refs {
		choices = append(choices, ref.ID)
	}

	var picked string
	prompt := &survey.Select{
		Message: "Operation:",
		Options: choices,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return "", err
	}
	return picked, nil
}

func printAttributes(output map[string]map[string]string) {
	names := make([]string, 0, len(output))
	for name := range output {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s:\n", name)
		attrs := output[name]
		keys := make([]string, 0, len(attrs))
		for key := range attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s=%q\n", key, attrs[key])
		}
	}
}
