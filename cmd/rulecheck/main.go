// Command rulecheck loads one or more element/rule asset directories and
// reports load diagnostics: fatal InvalidAssetError entries and the
// UnknownElementError rules that LoadRules drops rather than failing on
// (spec §7). Each directory is validated independently, so a malformed
// rule in one asset pack never blocks the report for the others.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"terraspiel/internal/assets"

	"golang.org/x/sync/errgroup"
)

type result struct {
	dir      string
	elements int
	rules    int
	dropped  []error
	err      error
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: rulecheck <dir>...")
		fmt.Fprintln(os.Stderr, "each <dir> must contain elements.json and rules.json")
	}
	flag.Parse()
	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"internal/sims/terraspiel/assetdata"}
	}

	results := make([]result, len(dirs))
	var g errgroup.Group
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			results[i] = check(dir)
			return nil
		})
	}
	_ = g.Wait()

	exit := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("%s: FAILED: %v\n", r.dir, r.err)
			exit = 1
			continue
		}
		fmt.Printf("%s: %d elements, %d rules loaded, %d dropped\n", r.dir, r.elements, r.rules, len(r.dropped))
		for _, d := range r.dropped {
			fmt.Printf("  dropped: %v\n", d)
		}
	}
	os.Exit(exit)
}

func check(dir string) result {
	r := result{dir: dir}

	elData, err := os.ReadFile(filepath.Join(dir, "elements.json"))
	if err != nil {
		r.err = err
		return r
	}
	elements, err := assets.LoadElements(elData)
	if err != nil {
		r.err = fmt.Errorf("elements.json: %w", err)
		return r
	}
	r.elements = len(elements)

	known := make(map[string]assets.Element, len(elements))
	for _, el := range elements {
		known[el.Name] = el
	}

	ruleData, err := os.ReadFile(filepath.Join(dir, "rules.json"))
	if err != nil {
		r.err = err
		return r
	}
	ruleSet, report, err := assets.LoadRules(ruleData, known)
	if err != nil {
		r.err = fmt.Errorf("rules.json: %w", err)
		return r
	}
	r.rules = len(ruleSet.Transforms) + len(ruleSet.Particles)
	if report != nil {
		r.dropped = report.DroppedRules
	}

	registry := assets.Build(elements, ruleSet)
	if err := validateNames(registry); err != nil {
		r.err = err
	}
	return r
}

// validateNames exercises Registry.Names, confirming EMPTY occupies ID 0
// as every cell-totality invariant in the simulation assumes.
func validateNames(reg *assets.Registry) error {
	names := reg.Names()
	if len(names) == 0 || names[0] != "EMPTY" {
		data, _ := json.Marshal(names)
		return fmt.Errorf("registry order invariant broken, names=%s", data)
	}
	return nil
}
