package usecase

import (
	"errors"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeLeadExists         = "LEAD_EXISTS"
	CodeLeadConverted      = "LEAD_ALREADY_CONVERTED"
	CodeContactExists      = "CONTACT_EXISTS"
	CodeSlugExists         = "SLUG_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDatabase           = "DATABASE_ERROR"
)

// DomainError is an expected outcome the client can act on.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps infrastructure failures; its message never reaches the client.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func NewValidationError(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Kind: KindValidation, Code: CodeValidation, Message: msg}
}

var sentinelKinds = []struct {
	err  error
	kind ErrorKind
	code string
}{
	{entity.ErrLeadNotFound, KindNotFound, CodeNotFound},
	{entity.ErrContactNotFound, KindNotFound, CodeNotFound},
	{entity.ErrDealNotFound, KindNotFound, CodeNotFound},
	{entity.ErrCourseNotFound, KindNotFound, CodeNotFound},
	{entity.ErrCompanyNotFound, KindNotFound, CodeNotFound},
	{entity.ErrTestimonialNotFound, KindNotFound, CodeNotFound},
	{entity.ErrTaxonomyNotFound, KindNotFound, CodeNotFound},
	{entity.ErrLeadAlreadyExists, KindConflict, CodeLeadExists},
	{entity.ErrLeadAlreadyConverted, KindConflict, CodeLeadConverted},
	{entity.ErrContactEmailExists, KindConflict, CodeContactExists},
	{entity.ErrSlugAlreadyExists, KindConflict, CodeSlugExists},
}

// Classify turns repository sentinels into DomainErrors. Anything else becomes a TechnicalError.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) || IsTechnicalError(err) {
		return err
	}
	for _, s := range sentinelKinds {
		if errors.Is(err, s.err) {
			return &DomainError{Kind: s.kind, Code: s.code, Message: s.err.Error(), Err: err}
		}
	}
	return &TechnicalError{Code: CodeDatabase, Message: err.Error(), Err: err}
}
