package validation

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/packagemanager"
)

// maxProjectNameLength is npm's limit for package names.
const maxProjectNameLength = 214

// invalidNameChars cannot appear in a directory name on common file systems.
const invalidNameChars = `\/:*?"<>|`

func stringField(fl validator.FieldLevel) string {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}
	return field.String()
}

func isTemplateName(fl validator.FieldLevel) bool {
	return IsValidTemplateName(stringField(fl)) == nil
}

func isPackageManager(fl validator.FieldLevel) bool {
	return packagemanager.IsKnown(stringField(fl))
}

func isProjectName(fl validator.FieldLevel) bool {
	return IsValidProjectName(stringField(fl)) == nil
}

func IsValidTemplateName(name string) error {
	if !slices.Contains(constants.Templates, name) {
		return fmt.Errorf("invalid template selected: %s", name)
	}
	return nil
}

// IsValidProjectName accepts any name usable both as a directory name and as
// the "name" of a package.json.
func IsValidProjectName(projectName string) error {
	if strings.TrimSpace(projectName) == "" {
		return fmt.Errorf("project name can't be an empty string")
	}

	if projectName == "." || projectName == ".." {
		return fmt.Errorf("project name can't be %q", projectName)
	}

	if len(projectName) > maxProjectNameLength {
		return fmt.Errorf("project name is too long, limit is %d characters", maxProjectNameLength)
	}

	if strings.ContainsAny(projectName, invalidNameChars) {
		return fmt.Errorf("project name can't contain any of %s", invalidNameChars)
	}

	for _, r := range projectName {
		if unicode.IsControl(r) {
			return fmt.Errorf("project name can't contain control characters")
		}
	}

	return nil
}
