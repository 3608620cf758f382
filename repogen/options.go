package repogen

import (
	"reflect"
	"strings"
)

// settings holds the options shared by every store implementation.
type settings struct {
	entityName   string
	notFoundCode string
	conflictCode string

	// conflictCodes maps backend constraint names to error codes.
	// E.g. map["products_code_key"] = "PRODUCT_CODE_ALREADY_EXISTS"
	conflictCodes map[string]string

	// uniqueKeys are checked by stores without native unique constraints.
	uniqueKeys []uniqueKey
}

type uniqueKey struct {
	name string
	key  func(entity any) any
}

// Option configures a store.
type Option func(*settings)

// WithEntityName sets the entity name used in error messages.
// Defaults to the snake cased type name of the entity.
func WithEntityName(name string) Option {
	return func(s *settings) {
		s.entityName = name
	}
}

// WithNotFoundCode sets the error code for not found errors.
func WithNotFoundCode(code string) Option {
	return func(s *settings) {
		s.notFoundCode = code
	}
}

// WithConflictCode sets the error code used when an identifier already exists.
func WithConflictCode(code string) Option {
	return func(s *settings) {
		s.conflictCode = code
	}
}

// WithConflictCodes maps unique constraint (or index) names to error codes.
func WithConflictCodes(codes map[string]string) Option {
	return func(s *settings) {
		s.conflictCodes = codes
	}
}

// WithUniqueKey declares a unique constraint named name over the comparable value returned by key.
// The memory store enforces it itself; database backed stores rely on the constraint
// or index of the same name. Violations are reported with the code mapped to name by
// WithConflictCodes.
func WithUniqueKey[E any](name string, key func(entity *E) any) Option {
	return func(s *settings) {
		s.uniqueKeys = append(s.uniqueKeys, uniqueKey{
			name: name,
			key:  func(entity any) any { return key(entity.(*E)) }, //nolint:errcheck // only stores of E call it
		})
	}
}

func newSettings[E any](opts []Option) settings {
	s := settings{
		entityName:    entityNameOf[E](),
		notFoundCode:  CodeObjectNotFound,
		conflictCode:  CodeObjectAlreadyExists,
		conflictCodes: map[string]string{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// entityNameOf returns the snake cased name of the type E.
func entityNameOf[E any]() string {
	t := reflect.TypeFor[E]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var b strings.Builder
	for i, r := range t.Name() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
