package validator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/ddexcheck/internal/files/filesystem"
	"github.com/vvka-141/ddexcheck/internal/metadata"
	"github.com/vvka-141/ddexcheck/internal/rules"
	"github.com/vvka-141/ddexcheck/internal/schema"
	"github.com/vvka-141/ddexcheck/internal/schema/libxml"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Validator implements ddex.Validator.
type Validator struct {
	opts     ddex.Options
	logger   ddex.Logger
	fs       filesystem.FileSystemProvider
	engine   schema.Engine
	locator  *schema.Locator
	cache    *schema.Cache
	ruleOpts rules.Options
	now      func() time.Time

	// categories is replaceable in tests.
	categories func() []rules.Category
}

var _ ddex.Validator = (*Validator)(nil)

// Option configures a Validator.
type Option func(*Validator)

// WithFileSystem reads documents and schemas from fsProvider instead of the
// OS filesystem.
func WithFileSystem(fsProvider filesystem.FileSystemProvider) Option {
	return func(v *Validator) { v.fs = fsProvider }
}

// WithEngine replaces the default libxml2 engine with its pure Go fallback.
func WithEngine(engine schema.Engine) Option {
	return func(v *Validator) { v.engine = engine }
}

// WithClock sets the clock used for timing and date plausibility checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithRuleOptions toggles the plausibility checks of the business rules.
// The clock given to WithClock takes precedence over ruleOpts.Now.
func WithRuleOptions(ruleOpts rules.Options) Option {
	return func(v *Validator) { v.ruleOpts = ruleOpts }
}

// New creates a Validator.
// Panics if logger is nil.
func New(opts ddex.Options, logger ddex.Logger, options ...Option) *Validator {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Workers < 1 {
		opts.Workers = ddex.DefaultWorkers
	}

	v := &Validator{
		opts:     opts,
		logger:   logger,
		ruleOpts: rules.DefaultOptions(),
		cache:    schema.NewCache(),
	}
	for _, o := range options {
		o(v)
	}

	if v.fs == nil {
		v.fs = filesystem.NewOSFileSystem()
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.engine == nil {
		v.engine = schema.Chain{
			Primary:  libxml.New(),
			Fallback: schema.NewNativeEngine(v.fs),
		}
	}
	v.ruleOpts.Now = v.now
	v.locator = schema.NewLocator(v.fs, opts.SchemaDir, opts.SchemaPath)

	engine := rules.New(v.ruleOpts)
	v.categories = engine.Categories
	return v
}

// ValidateString validates an in-memory document.
func (v *Validator) ValidateString(xml string) ddex.Result {
	return v.ValidateBytes([]byte(xml))
}

// ValidateBytes validates an in-memory document.
func (v *Validator) ValidateBytes(doc []byte) ddex.Result {
	start := v.now()
	result, _ := v.run(doc)
	result.Duration = v.now().Sub(start)
	return result
}

// run drives the validation pipeline and returns the result together with
// the states visited.
func (v *Validator) run(doc []byte) (ddex.Result, []string) {
	p := newPipeline(v.logger)

	p.fire(eventParse)
	tree, err := xmltree.Parse(doc)
	if err != nil {
		p.fire(eventParseFailed)
		return parseFailure(err), p.visited
	}

	root := tree.Root()
	version := metadata.DetectVersion(root)
	messageType := metadata.DetectMessageType(root)

	p.fire(eventCheckSchema)
	var schemaIssues []ddex.Issue
	if !v.opts.SkipSchema {
		schemaIssues = v.checkSchema(doc, version)
	}

	if ddex.HasCritical(schemaIssues) {
		p.fire(eventCritical)
		p.fire(eventAssemble)
		var critical []ddex.Issue
		for _, issue := range schemaIssues {
			if ddex.IsCritical(issue.Code) {
				critical = append(critical, issue)
			}
		}
		result := ddex.NewResult(critical, nil, nil)
		result.Version = version
		result.MessageType = messageType
		p.fire(eventFinish)
		return result, p.visited
	}

	var ruleIssues []ddex.Issue
	if v.opts.BusinessRules {
		p.fire(eventRunRules)
		ruleIssues = runBusinessRules(v.categories, rules.Input{Root: root, MessageType: messageType})
	}

	p.fire(eventAssemble)
	result := assemble(schemaIssues, ruleIssues, version, messageType, v.opts.Strict)
	p.fire(eventFinish)
	return result, p.visited
}

func parseFailure(err error) ddex.Result {
	var syntaxErr *xmltree.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ddex.NewResult([]ddex.Issue{{
			Severity:   ddex.SeverityError,
			Message:    syntaxErr.Error(),
			Line:       syntaxErr.Line,
			Code:       ddex.CodeXMLSyntaxError,
			Suggestion: "Check that the document is well-formed XML",
		}}, nil, nil)
	}
	return ddex.Failure(ddex.CodeXMLParseError, fmt.Sprintf("XML parse failed: %v", err))
}

func (v *Validator) checkSchema(doc []byte, version string) []ddex.Issue {
	path, ok := v.locator.Find(version)
	if !ok {
		v.logger.Verbose("no XSD found for version %q under %s", version, v.locator.SearchPath())
		return []ddex.Issue{schema.NotFoundIssue(version, v.locator.SearchPath())}
	}

	compiled, err := v.cache.GetOrLoad(path, v.engine.Load)
	if err != nil {
		v.logger.Verbose("failed to load XSD %s: %v", path, err)
		return []ddex.Issue{schema.LoadErrorIssue(path, err)}
	}

	out := compiled.Validate(doc)
	if failure, ok := out.(schema.EngineFailure); ok {
		v.logger.Verbose("schema engine %s failed on %s: %v", v.engine.Name(), path, failure)
	}
	return schema.Issues(out, path)
}

// ValidateFile reads and validates one file.
func (v *Validator) ValidateFile(path string) ddex.Result {
	info, err := v.fs.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fileFailure(path, ddex.CodeFileNotFound, "file not found: "+path)
	case err != nil:
		return fileFailure(path, ddex.CodeFileReadError, fmt.Sprintf("failed to read file %s: %v", path, err))
	case info.IsDir():
		return fileFailure(path, ddex.CodeFileReadError, fmt.Sprintf("failed to read file %s: is a directory", path))
	}

	content, err := v.fs.ReadFile(path)
	if err != nil {
		return fileFailure(path, ddex.CodeFileReadError, fmt.Sprintf("failed to read file %s: %v", path, err))
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		result := fileFailure(path, ddex.CodeFileEncodingError, fmt.Sprintf("file is not valid UTF-8: %s", path))
		result.FileSize = info.Size()
		return result
	}

	v.logger.Verbose("validating %s (%d bytes)", path, info.Size())
	result := v.ValidateBytes(content)
	result.FilePath = path
	result.FileSize = info.Size()
	return result
}

func fileFailure(path, code, message string) ddex.Result {
	result := ddex.Failure(code, message)
	result.FilePath = path
	return result
}

// ValidateBatch validates paths with at most Options.Workers files in
// flight. Results are in input order. Files not started when ctx is
// cancelled get a BATCH_PROCESSING_ERROR result.
func (v *Validator) ValidateBatch(ctx context.Context, paths []string) []ddex.Result {
	results := make([]ddex.Result, len(paths))

	var g errgroup.Group
	g.SetLimit(v.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = fileFailure(path, ddex.CodeBatchProcessing,
					fmt.Sprintf("batch cancelled before %s was processed: %v", path, err))
				return nil
			}
			results[i] = v.validateBatchItem(path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// validateBatchItem isolates one file from the rest of the batch.
func (v *Validator) validateBatchItem(path string) (result ddex.Result) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("unexpected failure while processing %s: %v", path, r)
			result = fileFailure(path, ddex.CodeBatchProcessing,
				fmt.Sprintf("error while processing file %s: %v", path, r))
		}
	}()
	return v.ValidateFile(path)
}

// MessageInfo returns the envelope of a document. It fails when the
// document is not well-formed or when its type or version cannot be
// detected.
func (v *Validator) MessageInfo(xml string) (ddex.Message, error) {
	return metadata.Extract([]byte(xml), "")
}

// MessageInfoFile is MessageInfo for a file.
func (v *Validator) MessageInfoFile(path string) (ddex.Message, error) {
	content, err := v.fs.ReadFile(path)
	if err != nil {
		return ddex.Message{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return metadata.Extract(bytes.TrimPrefix(content, utf8BOM), path)
}

// SupportedVersions lists the version directories of the schema directory.
func (v *Validator) SupportedVersions() ([]string, error) {
	return v.locator.SupportedVersions()
}

// CacheInfo describes the compiled schemas held by the validator.
func (v *Validator) CacheInfo() schema.CacheInfo {
	return v.cache.Info()
}

// ClearCache drops every compiled schema.
func (v *Validator) ClearCache() {
	v.cache.Clear()
}
