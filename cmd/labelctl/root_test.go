package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ghuser/bomlabel/services/label/application/handlers"
)

const testCatalog = "../../services/label/infrastructure/memory/testdata/marzipan_bar.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestLabel_JSON(t *testing.T) {
	out, err := run(t, "label", "1000", "--catalog", testCatalog)
	if err != nil {
		t.Fatalf("label: %v", err)
	}

	var resp handlers.LabelResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if resp.ItemCode != "1000" || resp.LeafCount != 2 {
		t.Errorf("unexpected label %+v", resp)
	}
	if got := resp.Nutrients.EnergyKcal; got < 469.99 || got > 470.01 {
		t.Errorf("EnergyKcal = %v, want 470", got)
	}
	if resp.Allergens["almond"] != "In product" {
		t.Errorf("allergens = %v", resp.Allergens)
	}
	if !strings.Contains(resp.Declaration, "MANDLER") {
		t.Errorf("declaration = %q", resp.Declaration)
	}
}

func TestExplode_YAML(t *testing.T) {
	out, err := run(t, "explode", "1000", "--catalog", testCatalog, "--format", "yaml")
	if err != nil {
		t.Fatalf("explode: %v", err)
	}

	var resp handlers.IngredientsResponse
	if err := yaml.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(resp.Ingredients) != 2 {
		t.Fatalf("ingredients = %+v", resp.Ingredients)
	}
	if resp.Ingredients[0].ItemCode != "2001" || resp.Ingredients[1].ItemCode != "2002" {
		t.Errorf("ingredients not sorted by code: %+v", resp.Ingredients)
	}
	if got := resp.Ingredients[1].Percent; got < 59.99 || got > 60.01 {
		t.Errorf("marzipan share = %v, want 60", got)
	}
	if len(resp.Skipped) != 0 {
		t.Errorf("skipped = %+v", resp.Skipped)
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := run(t, "label", "1000", "--catalog", testCatalog, "--format", "xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestMissingCatalog(t *testing.T) {
	if _, err := run(t, "label", "1000", "--catalog", "does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestUnknownItem(t *testing.T) {
	if _, err := run(t, "label", "9999", "--catalog", testCatalog); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestRequiresItemCode(t *testing.T) {
	if _, err := run(t, "explode", "--catalog", testCatalog); err == nil {
		t.Fatal("expected error without item code")
	}
}
