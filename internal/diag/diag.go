// Package diag defines the error taxonomy of a compile run. Every category is
// fatal; the only non-fatal conditions (duplicate class or article
// registration) are logged as warnings by the graph store instead.
package diag

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// CategorySchema covers references to undeclared article or link types.
	CategorySchema goerrors.Category = "schema"
	// CategoryKeySyntax covers malformed keys.
	CategoryKeySyntax goerrors.Category = "key_syntax"
	// CategoryReference covers links or includes naming a missing class or article.
	CategoryReference goerrors.Category = "reference"
	// CategoryCompatibility covers dependency schemas that are not a subset of the project schema.
	CategoryCompatibility goerrors.Category = "compatibility"
	// CategoryStructure covers illegal heading nesting and malformed content.
	CategoryStructure goerrors.Category = "structure"
	// CategoryIO covers filesystem failures.
	CategoryIO goerrors.Category = "io"
)

// Text codes attached to taxonomy errors.
const (
	CodeUndeclaredType        = "UNDECLARED_TYPE"
	CodeUndeclaredLink        = "UNDECLARED_LINK"
	CodeDuplicateType         = "DUPLICATE_TYPE"
	CodeDuplicateLink         = "DUPLICATE_LINK"
	CodeTypeMismatch          = "TYPE_MISMATCH"
	CodeDuplicateClass        = "DUPLICATE_CLASS"
	CodeDuplicateArticle      = "DUPLICATE_ARTICLE"
	CodeInvalidKey            = "INVALID_KEY"
	CodeMissingClass          = "MISSING_CLASS"
	CodeMissingArticle        = "MISSING_ARTICLE"
	CodeMissingDependencyType = "MISSING_DEPENDENCY_TYPE"
	CodeMissingDependencyLink = "MISSING_DEPENDENCY_LINK"
	CodeForeignDependency     = "FOREIGN_DEPENDENCY"
	CodeInvalidInclude        = "INVALID_INCLUDE"
	CodeHeadingLevel          = "HEADING_LEVEL"
	CodeHeadingJump           = "HEADING_JUMP"
	CodeInvalidContent        = "INVALID_CONTENT"
	CodeInvalidRecord         = "INVALID_RECORD"
	CodeRead                  = "READ"
	CodeParse                 = "PARSE"
	CodeWrite                 = "WRITE"
)

// Errorf builds a taxonomy error with a formatted message.
func Errorf(category goerrors.Category, code, format string, args ...any) *goerrors.Error {
	return goerrors.New(fmt.Sprintf(format, args...), category).WithTextCode(code)
}

// Wrap attaches a category and code to err. Errors that already carry a
// category keep it.
func Wrap(err error, category goerrors.Category, code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return goerrors.Wrap(err, category, fmt.Sprintf(format, args...))
	}
	return goerrors.Wrap(err, category, fmt.Sprintf(format, args...)).WithTextCode(code)
}

// Is reports whether err carries the given category anywhere in its chain.
func Is(err error, category goerrors.Category) bool {
	return goerrors.HasCategory(err, category)
}

// Code returns the text code of the outermost taxonomy error in err's chain.
func Code(err error) string {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode
	}
	return ""
}

// Invalid maps an ozzo-validation failure onto a structure error that keeps
// the per-field messages.
func Invalid(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	e := goerrors.FromOzzoValidation(err, fmt.Sprintf(format, args...))
	e.Category = CategoryStructure
	return e.WithTextCode(CodeInvalidRecord)
}
