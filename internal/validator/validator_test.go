package validator

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/ddexcheck/internal/files/filesystem"
	"github.com/vvka-141/ddexcheck/internal/logging"
	"github.com/vvka-141/ddexcheck/internal/rules"
	"github.com/vvka-141/ddexcheck/internal/schema"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

var testSchemaDir = filepath.Join("testdata", "schemas", "ddex")

func newTestValidator(t *testing.T, configure ...func(*ddex.Options)) *Validator {
	t.Helper()
	opts := ddex.DefaultOptions()
	opts.SchemaDir = testSchemaDir
	for _, c := range configure {
		c(&opts)
	}
	osfs := filesystem.NewOSFileSystem()
	return New(opts, logging.NewNullLogger(),
		WithFileSystem(osfs),
		WithEngine(schema.NewNativeEngine(osfs)),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(content)
}

func codes(issues []ddex.Issue) []string {
	out := []string{}
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestNew_NilLogger(t *testing.T) {
	assert.Panics(t, func() { New(ddex.DefaultOptions(), nil) })
}

func TestValidateString_ValidDocument(t *testing.T) {
	v := newTestValidator(t)

	result, states := v.run([]byte(fixture(t, "valid_ern382.xml")))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{ddex.CodeVersionDetected, ddex.CodeMessageTypeDetected}, codes(result.Info))
	assert.Equal(t, "3.8.2", result.Version)
	assert.Equal(t, "NewReleaseMessage", result.MessageType)
	assert.Equal(t, []string{StateStart, StateParse, StateSchemaCheck, StateBusinessRules, StateAssemble, StateDone}, states)
}

func TestValidateString_Unparseable(t *testing.T) {
	v := newTestValidator(t)

	for _, input := range []string{"not xml", "", "<a><b></a>", "<a/><b/>"} {
		t.Run(input, func(t *testing.T) {
			result, states := v.run([]byte(input))

			require.Len(t, result.Errors, 1)
			assert.Equal(t, ddex.CodeXMLSyntaxError, result.Errors[0].Code)
			assert.False(t, result.Valid)
			assert.Empty(t, result.Warnings)
			assert.Empty(t, result.Info)
			assert.Equal(t, []string{StateStart, StateParse, StateParseFailed}, states)
		})
	}
}

func TestValidateString_DeclaredNonUTF8Charset(t *testing.T) {
	v := newTestValidator(t, func(o *ddex.Options) { o.SkipSchema = true })

	result := v.ValidateString(`<?xml version="1.0" encoding="ISO-8859-1"?>
<ern:NewReleaseMessage xmlns:ern="http://ddex.net/xml/ern/382">
  <MessageHeader/>
</ern:NewReleaseMessage>`)

	assert.NotContains(t, codes(result.Errors), ddex.CodeXMLParseError)
	assert.Equal(t, "3.8.2", result.Version)
}

func TestValidateString_SyntaxErrorLine(t *testing.T) {
	v := newTestValidator(t)
	result := v.ValidateString("<root>\n  <child>\n</root>")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Line)
}

func TestValidateString_MinimalRelease(t *testing.T) {
	v := newTestValidator(t)
	result := v.ValidateString(fixture(t, "minimal_release.xml"))

	assert.False(t, result.Valid)
	assert.Contains(t, codes(result.Errors), ddex.CodeMissingMessageHeader)
	assert.Contains(t, codes(result.Errors), ddex.CodeMissingReleaseList)
	assert.Contains(t, codes(result.Warnings), ddex.CodeMissingResourceList)

	// schema issues come first
	assert.Equal(t, ddex.CodeSchemaValidation, result.Errors[0].Code)
	assert.Equal(t, "using XSD: ern-main.xsd", result.Errors[0].Context)
}

func TestValidateString_RuleFindings(t *testing.T) {
	v := newTestValidator(t)
	result := v.ValidateString(fixture(t, "problems.xml"))

	assert.Equal(t, []string{ddex.CodeInvalidISRC}, codes(result.Errors))
	assert.Equal(t, []string{ddex.CodeUnusuallyLongDuration, ddex.CodeUnusualBitRate}, codes(result.Warnings))
	assert.False(t, result.Valid)
}

func TestValidateString_StrictMode(t *testing.T) {
	normal := newTestValidator(t).ValidateString(fixture(t, "problems.xml"))
	strict := newTestValidator(t, func(o *ddex.Options) { o.Strict = true }).ValidateString(fixture(t, "problems.xml"))

	assert.Len(t, strict.Errors, len(normal.Errors)+len(normal.Warnings))
	assert.Empty(t, strict.Warnings)
	for _, e := range normal.Errors {
		assert.Contains(t, strict.Errors, e)
	}
	for _, e := range strict.Errors {
		assert.Equal(t, ddex.SeverityError, e.Severity)
	}
	for _, w := range normal.Warnings {
		assert.Equal(t, ddex.SeverityWarning, w.Severity, "normal run keeps warning severity")
	}
}

func TestValidateString_WarningsDoNotAffectValidity(t *testing.T) {
	doc := `<ern:NewReleaseMessage xmlns:ern="http://ddex.net/xml/ern/382">
  <MessageHeader>
    <MessageThreadId>T</MessageThreadId><MessageId>M</MessageId>
    <MessageSender/><MessageRecipient/>
    <MessageCreatedDateTime>2024-06-01T10:00:00Z</MessageCreatedDateTime>
  </MessageHeader>
  <ResourceList/>
  <ReleaseList><Release><ReleaseResourceReference>A1</ReleaseResourceReference></Release></ReleaseList>
</ern:NewReleaseMessage>`

	result := newTestValidator(t).ValidateString(doc)
	assert.Equal(t, []string{ddex.CodeUndefinedResourceRef}, codes(result.Errors))

	doc = `<ern:NewReleaseMessage xmlns:ern="http://ddex.net/xml/ern/382">
  <MessageHeader>
    <MessageThreadId>T</MessageThreadId><MessageId>M</MessageId>
    <MessageSender/><MessageRecipient/>
    <MessageCreatedDateTime>2024-06-01T10:00:00Z</MessageCreatedDateTime>
  </MessageHeader>
  <ResourceList><SoundRecording ResourceReference="A1"><Duration>PT1S</Duration></SoundRecording></ResourceList>
  <ReleaseList/>
</ern:NewReleaseMessage>`

	result = newTestValidator(t).ValidateString(doc)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{ddex.CodeUnusedResource}, codes(result.Warnings))
	assert.True(t, result.Valid)
}

func TestValidateString_SchemaNotFoundIsCritical(t *testing.T) {
	v := newTestValidator(t, func(o *ddex.Options) { o.SchemaDir = filepath.Join("testdata", "nowhere") })

	result, states := v.run([]byte(fixture(t, "problems.xml")))

	assert.Equal(t, []string{ddex.CodeSchemaNotFound}, codes(result.Errors))
	assert.Equal(t, "search path: "+filepath.Join("testdata", "nowhere"), result.Errors[0].Context)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Info)
	assert.Equal(t, "3.8.2", result.Version)
	assert.Equal(t, []string{StateStart, StateParse, StateSchemaCheck, StateCritical, StateAssemble, StateDone}, states)
}

func TestValidateString_SchemaLoadErrorIsCritical(t *testing.T) {
	notSchema := filepath.Join("testdata", "valid_ern382.xml")
	v := newTestValidator(t, func(o *ddex.Options) { o.SchemaPath = notSchema })

	result := v.ValidateString(fixture(t, "problems.xml"))

	assert.Equal(t, []string{ddex.CodeSchemaLoadError}, codes(result.Errors))
	assert.Equal(t, "XSD path: "+notSchema, result.Errors[0].Context)
	assert.Equal(t, 0, v.CacheInfo().CachedSchemas)
}

func TestValidateString_VersionSpecificSchema(t *testing.T) {
	v := newTestValidator(t)
	result := v.ValidateString(`<ern:NewReleaseMessage xmlns:ern="http://ddex.net/xml/ern/41"/>`)

	require.NotEmpty(t, result.Errors)
	assert.Equal(t, ddex.CodeSchemaValidation, result.Errors[0].Code)
	assert.Equal(t, "using XSD: ern-main-4.1.xsd", result.Errors[0].Context)
	assert.Equal(t, "4.1", result.Version)
}

func TestValidateString_SkipSchema(t *testing.T) {
	v := newTestValidator(t, func(o *ddex.Options) {
		o.SkipSchema = true
		o.SchemaDir = filepath.Join("testdata", "nowhere")
	})
	result := v.ValidateString(fixture(t, "minimal_release.xml"))

	assert.NotContains(t, codes(result.Errors), ddex.CodeSchemaValidation)
	assert.NotContains(t, codes(result.Errors), ddex.CodeSchemaNotFound)
	assert.Contains(t, codes(result.Errors), ddex.CodeMissingMessageHeader)
}

func TestValidateString_BusinessRulesDisabled(t *testing.T) {
	v := newTestValidator(t, func(o *ddex.Options) { o.BusinessRules = false })

	result, states := v.run([]byte(fixture(t, "problems.xml")))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
	assert.Len(t, result.Info, 2)
	assert.Equal(t, []string{StateStart, StateParse, StateSchemaCheck, StateAssemble, StateDone}, states)
}

func TestValidateString_CategoryPanicIsIsolated(t *testing.T) {
	v := newTestValidator(t, func(o *ddex.Options) { o.SkipSchema = true })
	v.categories = func() []rules.Category {
		return []rules.Category{
			{Name: "first", Check: func(rules.Input) []ddex.Issue {
				return []ddex.Issue{{Severity: ddex.SeverityWarning, Message: "first ran", Code: "FIRST"}}
			}},
			{Name: "boom", Check: func(rules.Input) []ddex.Issue {
				var root map[string]int
				root["x"] = 1
				return nil
			}},
			{Name: "last", Check: func(rules.Input) []ddex.Issue {
				return []ddex.Issue{{Severity: ddex.SeverityWarning, Message: "last ran", Code: "LAST"}}
			}},
		}
	}

	result := v.ValidateString("<NewReleaseMessage/>")

	require.Equal(t, []string{ddex.CodeBusinessRuleFailed}, codes(result.Errors))
	assert.Equal(t, "category: boom", result.Errors[0].Context)
	assert.Contains(t, result.Errors[0].Message, `"boom"`)
	assert.Equal(t, []string{"FIRST", "LAST"}, codes(result.Warnings))
}

func TestValidateString_RuleCatalogPanic(t *testing.T) {
	v := newTestValidator(t, func(o *ddex.Options) { o.SkipSchema = true })
	v.categories = func() []rules.Category { panic("catalog unavailable") }

	result, states := v.run([]byte("<NewReleaseMessage/>"))

	require.Equal(t, []string{ddex.CodeBusinessRule}, codes(result.Errors))
	assert.Contains(t, result.Errors[0].Message, "catalog unavailable")
	assert.Equal(t, StateDone, states[len(states)-1])
}

func TestValidateString_ConcurrentUse(t *testing.T) {
	v := newTestValidator(t)
	doc := fixture(t, "problems.xml")
	want := v.ValidateString(doc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := v.ValidateString(doc)
			assert.Equal(t, codes(want.Errors), codes(got.Errors))
			assert.Equal(t, codes(want.Warnings), codes(got.Warnings))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, v.CacheInfo().CachedSchemas)
}

func TestValidateFile(t *testing.T) {
	v := newTestValidator(t)

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join("testdata", "valid_ern382.xml")
		info, err := os.Stat(path)
		require.NoError(t, err)

		result := v.ValidateFile(path)
		assert.True(t, result.Valid)
		assert.Equal(t, path, result.FilePath)
		assert.Equal(t, info.Size(), result.FileSize)
	})

	t.Run("missing", func(t *testing.T) {
		path := filepath.Join("testdata", "does-not-exist.xml")
		result := v.ValidateFile(path)
		assert.Equal(t, []string{ddex.CodeFileNotFound}, codes(result.Errors))
		assert.Equal(t, path, result.FilePath)
		assert.Empty(t, result.Info)
	})

	t.Run("directory", func(t *testing.T) {
		result := v.ValidateFile("testdata")
		assert.Equal(t, []string{ddex.CodeFileReadError}, codes(result.Errors))
	})

	t.Run("byte order mark", func(t *testing.T) {
		result := v.ValidateFile(filepath.Join("testdata", "bom.xml"))
		assert.NotContains(t, codes(result.Errors), ddex.CodeXMLSyntaxError)
		assert.Equal(t, "NewReleaseMessage", result.MessageType)
	})

	t.Run("not utf-8", func(t *testing.T) {
		result := v.ValidateFile(filepath.Join("testdata", "latin1.xml"))
		assert.Equal(t, []string{ddex.CodeFileEncodingError}, codes(result.Errors))
		assert.Positive(t, result.FileSize)
	})
}

func TestMessageInfo(t *testing.T) {
	v := newTestValidator(t)

	msg, err := v.MessageInfo(fixture(t, "valid_ern382.xml"))
	require.NoError(t, err)
	assert.Equal(t, ddex.Message{
		Type:            "NewReleaseMessage",
		Version:         "3.8.2",
		SchemaVersionID: "ern/382",
		Language:        "en",
	}, msg)

	_, err = v.MessageInfo("not xml")
	assert.Error(t, err)

	_, err = v.MessageInfo("<NewReleaseMessage/>")
	assert.Error(t, err, "version cannot be detected")

	msg, err = v.MessageInfoFile(filepath.Join("testdata", "bom.xml"))
	require.NoError(t, err)
	assert.Equal(t, "3.8.2", msg.Version)
}

func TestSupportedVersionsAndCache(t *testing.T) {
	v := newTestValidator(t)

	versions, err := v.SupportedVersions()
	require.NoError(t, err)
	assert.Equal(t, []string{"3.8.2", "4.1"}, versions)

	assert.Equal(t, 0, v.CacheInfo().CachedSchemas)
	v.ValidateString(fixture(t, "valid_ern382.xml"))
	v.ValidateString(fixture(t, "problems.xml"))

	info := v.CacheInfo()
	assert.Equal(t, 1, info.CachedSchemas)
	assert.Equal(t, []string{filepath.Join(testSchemaDir, "3.8.2", "ern-main.xsd")}, info.SchemaPaths)

	v.ClearCache()
	assert.Equal(t, 0, v.CacheInfo().CachedSchemas)
}
