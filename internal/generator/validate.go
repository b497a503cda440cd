package generator

import "strings"

// ValidateName rejects names that are empty after trimming or that contain a
// path separator or a null byte. There is no length limit and no character
// allow-list beyond these exclusions.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return InvalidProjectName(name)
	}
	if strings.ContainsAny(trimmed, "/\\\x00") {
		return InvalidProjectName(name)
	}
	return nil
}
