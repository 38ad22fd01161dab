package wizard

import (
	"fmt"
	"regexp"
)

// npm rejects names over 214 characters, and the Angular CLI is
// stricter still about what it accepts as a project name. The
// intersection kept here is lowercase kebab-case starting with a
// letter, which satisfies both and makes a clean directory name.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

const maxProjectNameLength = 214

// validateProjectName reports why a name cannot be used, or nil.
func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}

	if len(name) > maxProjectNameLength {
		return fmt.Errorf("project name must be at most %d characters", maxProjectNameLength)
	}

	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("project name must be lowercase, start with a letter and contain only letters, digits and dashes")
	}

	return nil
}
