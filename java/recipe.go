package java

import "time"

// Descriptive metadata for hosts that surface the rewrite as a named
// refactoring. None of this affects behavior.

// DisplayName returns the human-readable name of the rewrite.
func (Rewriter) DisplayName() string {
	return "Remove unused imports"
}

// Description returns a short description of the rewrite and its safety
// precondition.
func (Rewriter) Description() string {
	return "Remove imports for types that are not referenced. As a precaution against " +
		"incorrect changes no imports will be removed from any source where unknown " +
		"types are referenced."
}

// Tags returns the rule identifiers this rewrite implements.
func (Rewriter) Tags() []string {
	return []string{"RSPEC-S1128"}
}

// EstimatedEffortPerOccurrence returns the manual-fix effort the rewrite
// saves per occurrence.
func (Rewriter) EstimatedEffortPerOccurrence() time.Duration {
	return 5 * time.Minute
}
