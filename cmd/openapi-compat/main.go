// Command openapi-compat fails when a revised OpenAPI document drops
// anything clients of the base document may rely on.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"postboard/docs"

	"gopkg.in/yaml.v3"
)

var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"patch": true, "head": true, "options": true,
}

// contract is the client-visible surface of an OpenAPI document.
type contract struct {
	// operations maps "METHOD /path" to its response codes.
	operations map[string]map[string]bool
	// properties maps a definition name to its property names.
	properties map[string]map[string]bool
}

func main() {
	basePath := flag.String("base", "", "base OpenAPI document (JSON or YAML)")
	revisionPath := flag.String("revision", "", "revised OpenAPI document; defaults to the document built into this binary")
	flag.Parse()

	if strings.TrimSpace(*basePath) == "" {
		fmt.Fprintln(os.Stderr, "usage: openapi-compat -base <path> [-revision <path>]")
		os.Exit(2)
	}

	base, err := loadFile(*basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load base document: %v\n", err)
		os.Exit(1)
	}

	var revision contract
	if strings.TrimSpace(*revisionPath) == "" {
		revision, err = parseContract([]byte(docs.SwaggerInfo.ReadDoc()))
	} else {
		revision, err = loadFile(*revisionPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load revision document: %v\n", err)
		os.Exit(1)
	}

	if issues := breakingChanges(base, revision); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "backward compatibility check failed:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "- %s\n", issue)
		}
		os.Exit(1)
	}

	fmt.Println("openapi compatibility check passed")
}

func loadFile(path string) (contract, error) {
	// #nosec G304: path comes from CLI flags in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return contract{}, err
	}
	return parseContract(raw)
}

// parseContract reads a JSON or YAML document; JSON is valid YAML.
func parseContract(raw []byte) (contract, error) {
	var doc struct {
		Paths       map[string]map[string]any `yaml:"paths"`
		Definitions map[string]struct {
			Properties map[string]any `yaml:"properties"`
		} `yaml:"definitions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return contract{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.Paths == nil {
		return contract{}, fmt.Errorf("missing top-level paths field")
	}

	c := contract{
		operations: map[string]map[string]bool{},
		properties: map[string]map[string]bool{},
	}

	for path, item := range doc.Paths {
		for method, op := range item {
			method = strings.ToLower(strings.TrimSpace(method))
			if !httpMethods[method] {
				continue
			}
			codes := map[string]bool{}
			if opMap, ok := op.(map[string]any); ok {
				if responses, ok := opMap["responses"].(map[string]any); ok {
					for code := range responses {
						codes[strings.ToLower(strings.TrimSpace(code))] = true
					}
				}
			}
			c.operations[strings.ToUpper(method)+" "+path] = codes
		}
	}

	for name, def := range doc.Definitions {
		props := map[string]bool{}
		for prop := range def.Properties {
			props[prop] = true
		}
		c.properties[name] = props
	}

	return c, nil
}

// breakingChanges lists everything in base that revision no longer has.
func breakingChanges(base, revision contract) []string {
	var issues []string

	for op, codes := range base.operations {
		revCodes, ok := revision.operations[op]
		if !ok {
			issues = append(issues, "removed operation: "+op)
			continue
		}
		for code := range codes {
			if !revCodes[code] {
				issues = append(issues, fmt.Sprintf("removed response code: %s -> %s", op, code))
			}
		}
	}

	for name, props := range base.properties {
		revProps, ok := revision.properties[name]
		if !ok {
			issues = append(issues, "removed definition: "+name)
			continue
		}
		for prop := range props {
			if !revProps[prop] {
				issues = append(issues, fmt.Sprintf("removed property: %s.%s", name, prop))
			}
		}
	}

	sort.Strings(issues)
	return issues
}
