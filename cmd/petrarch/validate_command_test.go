package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"petrarch/internal/config"
	"petrarch/internal/services"
	"petrarch/internal/testsupport"
	"petrarch/internal/validation"
)

const testGold = `<Sentences>
<Environment><Issuefile>issues.txt</Issuefile></Environment>
<Config option="comma_min" value="3"/>
<Sentence date="20140101" id="S1-1" sentence="true" source="AFP">
  <EventCoding sourcecode="X" targetcode="Y" eventcode="010"/>
  <Text>X met Y.</Text>
  <Parse>(ROOT (S (NP (NNP X)) (VP (VBD met) (NP (NNP Y)))))</Parse>
</Sentence>
<Sentence date="20140101" id="S2-1" sentence="true" source="AFP">
  <EventCoding sourcecode="X" targetcode="Y" eventcode="010"/>
  <Text>Reversed roles.</Text>
  <Parse>(ROOT (S (NP (NNP Y)) (VP (VBD met) (NP (NNP X)))))</Parse>
</Sentence>
</Sentences>`

func writeGold(t *testing.T, env *cliTestEnv, content string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, "gold.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write gold: %v", err)
	}
	return path
}

func TestValidateReportsScore(t *testing.T) {
	env := setupCLITestEnv(t)
	gold := writeGold(t, env, testGold)

	out, _, err := runCLI(t, []string{"validate", "-i", gold}, env.configPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "Correctly identified 1 out of 2")
	requireContains(t, out, "(X, Y, 010)")
	requireContains(t, out, "(Y, X, 010)")
}

func TestValidateDefaultsToConfiguredGoldFile(t *testing.T) {
	gold := filepath.Join(t.TempDir(), "gold.xml")
	testsupport.WriteFile(t, gold, testGold)
	env := setupCLITestEnv(t, testsupport.WithValidationFile(gold))

	out, _, err := runCLI(t, []string{"validate"}, env.configPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "Correctly identified 1 out of 2")
}

func TestValidateRequiresGoldFile(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"validate"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	gold := writeGold(t, env, testGold)

	out, _, err := runCLI(t, []string{"validate", "-i", gold, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("validate --json: %v", err)
	}
	var payload struct {
		Stopped bool              `json:"stopped"`
		Report  validation.Report `json:"report"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if payload.Report.Correct != 1 || payload.Report.Scored != 2 || len(payload.Report.Mismatches) != 1 {
		t.Fatalf("unexpected report %+v", payload.Report)
	}
	if payload.Report.Mismatches[0].StoryID != "S2" {
		t.Fatalf("expected mismatch on S2, got %+v", payload.Report.Mismatches[0])
	}
}

func TestValidateMalformedGoldIsFatal(t *testing.T) {
	env := setupCLITestEnv(t)
	gold := writeGold(t, env, `<Sentences><Sentence id="S1-1" sentence="true" source="AFP"><Text>x</Text><Parse>(S x)</Parse></Sentence></Sentences>`)

	out, _, err := runCLI(t, []string{"validate", "-i", gold}, env.configPath)
	if !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected malformed input error, got %v", err)
	}
	if out != "" {
		t.Fatalf("nothing should be scored, got output %q", out)
	}
}

func TestWithEnvironmentOverridesDictionaries(t *testing.T) {
	cfg := config.Default()
	cfg.Dictionaries.ActorFiles = []string{"a.txt"}
	got := withEnvironment(&cfg, validation.Environment{
		ActorFile:   "b.txt",
		DiscardFile: "gold.discards.txt",
		Pause:       "Story",
	})
	if got.Dictionaries.DiscardFile != "gold.discards.txt" || got.Dictionaries.ActorFiles[0] != "b.txt" {
		t.Fatalf("unexpected dictionaries %+v", got.Dictionaries)
	}
	if !got.Run.PauseByStory || got.Run.PauseBySentence {
		t.Fatalf("unexpected run settings %+v", got.Run)
	}
	if cfg.Dictionaries.ActorFiles[0] != "a.txt" || cfg.Dictionaries.DiscardFile == "gold.discards.txt" {
		t.Fatal("withEnvironment must not modify the loaded config")
	}
}
