// Command check_boundaries enforces the layering rules of the listing
// launchpad. The launchpad and stream services may not import each other,
// and within each service the domain and application layers may only reach
// the imports listed for them below. Run from the repository root.
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const modulePath = "launchpad"

var services = []string{
	"contexts/listing-launchpad/launchpad-service",
	"contexts/listing-launchpad/stream-service",
}

// layerAllow lists the non-stdlib import prefixes each inner layer may use.
// "self" expands to the owning service's module path. Layers without an
// entry (ports, adapters, transport, the service root) are unconstrained
// beyond the cross-service rule.
var layerAllow = map[string][]string{
	"domain": {
		"self/domain",
		modulePath + "/internal/shared",
	},
	"application": {
		"self/application",
		"self/domain",
		"self/ports",
		modulePath + "/internal/shared",
		"github.com/google/uuid",
	},
}

func main() {
	var problems []string
	for _, service := range services {
		problems = append(problems, checkService(service)...)
	}
	if len(problems) == 0 {
		fmt.Println("layer boundaries hold")
		return
	}
	for _, problem := range problems {
		fmt.Fprintln(os.Stderr, problem)
	}
	os.Exit(1)
}

func checkService(serviceDir string) []string {
	owner := modulePath + "/" + serviceDir
	var problems []string
	_ = filepath.WalkDir(serviceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", path, err))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		problems = append(problems, checkFile(filepath.ToSlash(path), serviceDir, owner)...)
		return nil
	})
	return problems
}

func checkFile(path string, serviceDir string, owner string) []string {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", path, err)}
	}

	layer, _, _ := strings.Cut(strings.TrimPrefix(path, serviceDir+"/"), "/")
	allow, layered := layerAllow[layer]

	var problems []string
	for _, imp := range parsed.Imports {
		target := strings.Trim(imp.Path.Value, `"`)
		line := fset.Position(imp.Pos()).Line
		switch {
		case crossesService(target, owner):
			problems = append(problems, fmt.Sprintf("%s:%d: %s reaches into another service", path, line, target))
		case layered && !permitted(target, owner, allow):
			problems = append(problems, fmt.Sprintf("%s:%d: %s is not allowed from the %s layer", path, line, target, layer))
		}
	}
	return problems
}

func crossesService(target string, owner string) bool {
	return strings.HasPrefix(target, modulePath+"/contexts/") && !underPrefix(target, owner)
}

func permitted(target string, owner string, allow []string) bool {
	if stdlib(target) {
		return true
	}
	for _, prefix := range allow {
		if underPrefix(target, strings.Replace(prefix, "self", owner, 1)) {
			return true
		}
	}
	return false
}

func underPrefix(target string, prefix string) bool {
	return target == prefix || strings.HasPrefix(target, prefix+"/")
}

func stdlib(target string) bool {
	root, _, _ := strings.Cut(target, "/")
	return !strings.Contains(root, ".") && !strings.HasPrefix(target, modulePath+"/")
}
