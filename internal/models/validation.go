package models

// ValidationResult collects findings from a non-throwing check. Errors make
// the subject unusable; warnings are advisory and the caller decides.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OKResult returns a passing result with no findings.
func OKResult() ValidationResult {
	return ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}
}

// ErrorResult returns a failing result carrying a single error message.
func ErrorResult(message string) ValidationResult {
	return ValidationResult{Valid: false, Errors: []string{message}, Warnings: []string{}}
}

// ResultFromErrors builds a result whose validity follows the error list.
func ResultFromErrors(errors []string) ValidationResult {
	if errors == nil {
		errors = []string{}
	}
	return ValidationResult{Valid: len(errors) == 0, Errors: errors, Warnings: []string{}}
}

// AddError appends an error and marks the result invalid.
func (r *ValidationResult) AddError(message string) {
	r.Errors = append(r.Errors, message)
	r.Valid = false
}

// AddWarning appends an advisory finding without affecting validity.
func (r *ValidationResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}
