package validator_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/vvka-141/ddexcheck/internal/files/filesystem"
	"github.com/vvka-141/ddexcheck/internal/logging"
	"github.com/vvka-141/ddexcheck/internal/schema"
	"github.com/vvka-141/ddexcheck/internal/validator"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "ddexcheck",
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "features")},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}

// scenarioState holds per-scenario state for step definitions.
type scenarioState struct {
	opts   ddex.Options
	result ddex.Result
}

func (s *scenarioState) validator() *validator.Validator {
	osfs := filesystem.NewOSFileSystem()
	return validator.New(s.opts, logging.NewNullLogger(),
		validator.WithFileSystem(osfs),
		validator.WithEngine(schema.NewNativeEngine(osfs)),
		validator.WithClock(func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }),
	)
}

func countCode(issues []ddex.Issue, code string) int {
	n := 0
	for _, i := range issues {
		if i.Code == code {
			n++
		}
	}
	return n
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &scenarioState{}

	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		s.opts = ddex.DefaultOptions()
		s.opts.SchemaDir = filepath.Join("testdata", "schemas", "ddex")
		s.result = ddex.Result{}
		return c, nil
	})

	// Given

	ctx.Step(`^a validator with default settings$`, func() error { return nil })
	ctx.Step(`^a validator without schema validation$`, func() error {
		s.opts.SkipSchema = true
		return nil
	})
	ctx.Step(`^strict mode$`, func() error {
		s.opts.Strict = true
		return nil
	})
	ctx.Step(`^the schema directory "([^"]*)"$`, func(dir string) error {
		s.opts.SchemaDir = filepath.FromSlash(dir)
		return nil
	})

	// When

	ctx.Step(`^I validate the text "([^"]*)"$`, func(text string) error {
		s.result = s.validator().ValidateString(text)
		return nil
	})
	ctx.Step(`^I validate the document:$`, func(doc *godog.DocString) error {
		s.result = s.validator().ValidateString(doc.Content)
		return nil
	})
	ctx.Step(`^I validate the fixture "([^"]*)"$`, func(name string) error {
		content, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			return err
		}
		s.result = s.validator().ValidateBytes(content)
		return nil
	})

	// Then

	ctx.Step(`^the document is (valid|invalid)$`, func(want string) error {
		if s.result.Valid != (want == "valid") {
			return fmt.Errorf("expected document to be %s, errors: %v", want, s.result.Errors)
		}
		if s.result.Valid != (len(s.result.Errors) == 0) {
			return fmt.Errorf("validity %v disagrees with %d errors", s.result.Valid, len(s.result.Errors))
		}
		return nil
	})
	ctx.Step(`^there is exactly 1 (error|warning) with code "([^"]*)"$`, func(kind, code string) error {
		issues := s.result.Errors
		if kind == "warning" {
			issues = s.result.Warnings
		}
		if n := countCode(issues, code); n != 1 {
			return fmt.Errorf("expected 1 %s %s, got %d in %v", kind, code, n, issues)
		}
		return nil
	})
	ctx.Step(`^the (errors|warnings|info) includes? "([^"]*)"$`, func(kind, code string) error {
		issues := map[string][]ddex.Issue{
			"errors":   s.result.Errors,
			"warnings": s.result.Warnings,
			"info":     s.result.Info,
		}[kind]
		if countCode(issues, code) == 0 {
			return fmt.Errorf("%s do not include %s: %v", kind, code, issues)
		}
		return nil
	})
	ctx.Step(`^there are no warnings$`, func() error {
		if len(s.result.Warnings) != 0 {
			return fmt.Errorf("expected no warnings, got %v", s.result.Warnings)
		}
		return nil
	})
	ctx.Step(`^there are (\d+) errors$`, func(n int) error {
		if len(s.result.Errors) != n {
			return fmt.Errorf("expected %d errors, got %d: %v", n, len(s.result.Errors), s.result.Errors)
		}
		return nil
	})
	ctx.Step(`^there are (\d+) issues with code "([^"]*)"$`, func(n int, code string) error {
		if got := countCode(s.result.Issues(), code); got != n {
			return fmt.Errorf("expected %d issues %s, got %d", n, code, got)
		}
		return nil
	})
	ctx.Step(`^there is no issue with code "([^"]*)"$`, func(code string) error {
		if got := countCode(s.result.Issues(), code); got != 0 {
			return fmt.Errorf("expected no %s, got %d", code, got)
		}
		return nil
	})
}
