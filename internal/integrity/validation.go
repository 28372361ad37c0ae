package integrity

// ValidationResult aggregates error and warning messages produced by a
// single validation call. It is transient and never persisted.
type ValidationResult struct {
	errors   []string
	warnings []string
}

// AddError records a validation error.
func (r *ValidationResult) AddError(msg string) {
	r.errors = append(r.errors, msg)
}

// AddWarning records a validation warning.
func (r *ValidationResult) AddWarning(msg string) {
	r.warnings = append(r.warnings, msg)
}

// HasErrors reports whether any errors were recorded.
func (r *ValidationResult) HasErrors() bool {
	return len(r.errors) > 0
}

// Errors returns the recorded error messages.
func (r *ValidationResult) Errors() []string {
	return r.errors
}

// Warnings returns the recorded warning messages.
func (r *ValidationResult) Warnings() []string {
	return r.warnings
}
