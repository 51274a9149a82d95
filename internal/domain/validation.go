package domain

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	// Asset file names end up joined onto storage paths.
	_ = validatorInstance.RegisterValidation("safepath", validateSafePath)
}

// validateSafePath ensures the path doesn't contain any directory traversal attempts.
func validateSafePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if strings.Contains(path, "..") ||
		strings.Contains(path, "~") ||
		strings.HasPrefix(path, "/") ||
		strings.Contains(path, "\\") {
		return false
	}

	// Catches subtler forms like "videos/./../file".
	return path == filepath.Clean(path)
}
