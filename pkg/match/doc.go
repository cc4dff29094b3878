// Package match resolves free-text country labels against a reference set.
//
// Key types and functions:
//   - Normalize, Normalizer: canonical match keys for labels
//   - ExactMatcher: normalized-key lookup, first entity by load order wins
//   - Ratio, FuzzyMatcher: 0-100 similarity scoring and best-candidate search
//   - Overlay: human-curated name to value exceptions
package match
