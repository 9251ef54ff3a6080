// Package category resolves the category of an application identity.
//
// Lookup order is the user's override, then the built-in table of known
// executables, then keyword rules over the executable stem, and finally
// models.CategoryOther.
package category

import (
	"strings"
	"unicode"

	"github.com/slihbo/WinTrace/internal/apperr"
	"github.com/slihbo/WinTrace/internal/models"
)

var (
	ErrUnknownCategory = &apperr.Error{
		Message: "unknown category %q",
	}

	ErrEmptyIdentity = &apperr.Error{
		Message: "application identity cannot be empty",
	}

	errSaveOverride = &apperr.Error{
		Message: "unable to save category override for %s",
	}
)

// OverrideStore persists user overrides. SetOverride must be write-through:
// once it returns nil the override survives a restart.
type OverrideStore interface {
	Override(id string) (models.Category, bool)
	SetOverride(id string, c models.Category) error
}

// Classifier maps identities to categories.
type Classifier struct {
	overrides OverrideStore
}

// New returns a Classifier that consults overrides before the defaults. A nil
// store classifies with the defaults only.
func New(overrides OverrideStore) *Classifier {
	return &Classifier{overrides: overrides}
}

// Classify returns the category of id. It never fails: an identity matched
// by no rule is Other.
func (c *Classifier) Classify(id string) models.Category {
	id = NormalizeIdentity(id)

	if c.overrides != nil {
		if cat, ok := c.overrides.Override(id); ok {
			return cat
		}
	}

	return Default(id)
}

// SetOverride records a user-chosen category for id.
func (c *Classifier) SetOverride(id, name string) error {
	id = NormalizeIdentity(id)
	if id == "" {
		return ErrEmptyIdentity
	}

	cat, ok := models.ParseCategory(name)
	if !ok {
		return ErrUnknownCategory.Fmt(name)
	}

	if c.overrides == nil {
		return errSaveOverride.Fmt(id)
	}

	if err := c.overrides.SetOverride(id, cat); err != nil {
		return errSaveOverride.Fmt(id).Wrap(err)
	}

	return nil
}

// NormalizeIdentity trims and lower-cases an identity.
func NormalizeIdentity(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Default classifies id using the built-in rules only.
func Default(id string) models.Category {
	id = NormalizeIdentity(id)

	if cat, ok := exactNames[id]; ok {
		return cat
	}

	stem := strings.TrimSuffix(strings.TrimSuffix(id, ".exe"), ".app")

	words := strings.FieldsFunc(stem, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if matches(stem, words, kw) {
				return rule.category
			}
		}
	}

	return models.CategoryOther
}

func matches(stem string, words []string, keyword string) bool {
	if strings.IndexFunc(keyword, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) >= 0 {
		return strings.Contains(stem, keyword)
	}

	for _, w := range words {
		if strings.HasPrefix(w, keyword) {
			return true
		}
	}

	return false
}
