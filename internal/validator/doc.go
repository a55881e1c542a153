// Package validator is the ddexcheck facade: it turns raw DDEX XML into a
// ddex.Result.
//
// A single validation runs as a small state machine:
//
//	start -> parse -> parse_failed
//	               -> schema_check -> critical -> assemble -> done
//	                               -> business_rules -> assemble -> done
//	                               -> assemble -> done
//
// Unparseable input ends in parse_failed with a single error. A critical
// schema issue (schema not found or not loadable) skips the business rules
// and the result holds only that issue. Otherwise every rule category runs in
// isolation: a panic in one category becomes one
// BUSINESS_RULE_PROCESSING_ERROR and the other categories still run.
//
// Validator is safe for concurrent use. Its only shared mutable state is the
// schema cache.
package validator
