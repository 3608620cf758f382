package repogen

import (
	"errors"
	"fmt"

	"github.com/code19m/errx"
)

const (
	// CodeObjectNotFound is the default code of not found errors.
	CodeObjectNotFound = "OBJECT_NOT_FOUND"
	// CodeObjectAlreadyExists is the default code of conflict errors.
	CodeObjectAlreadyExists = "OBJECT_ALREADY_EXISTS"

	codeInvalidEntity = "INVALID_ENTITY"
)

// IsNotFound reports whether err is a not found error returned by Update or Delete.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return false
	}
	return e.Type() == errx.T_NotFound
}

// IsConflict reports whether err signals an identifier or unique key collision.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return false
	}
	return e.Type() == errx.T_Conflict
}

func (s settings) notFound(op string, id any) error {
	return errx.New(
		fmt.Sprintf("no %s found to %s", s.entityName, op),
		errx.WithCode(s.notFoundCode),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"id": id}),
	)
}

func (s settings) conflict(op string, code string, details errx.D) error {
	if code == "" {
		code = s.conflictCode
	}
	return errx.New(
		fmt.Sprintf("conflict while %s %s", op, s.entityName),
		errx.WithCode(code),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(details),
	)
}

func (s settings) invalid(op string) error {
	return errx.New(
		fmt.Sprintf("cannot %s nil %s", op, s.entityName),
		errx.WithCode(codeInvalidEntity),
		errx.WithType(errx.T_Validation),
	)
}

func (s settings) noSequence() error {
	return errx.New(
		fmt.Sprintf("no id sequence configured for %s store", s.entityName),
		errx.WithCode(codeInvalidEntity),
		errx.WithType(errx.T_Validation),
	)
}
