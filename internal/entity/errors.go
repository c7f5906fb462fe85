package entity

import "errors"

var (
	ErrLeadNotFound         = errors.New("lead no encontrado")
	ErrLeadAlreadyExists    = errors.New("ya existe un lead con este email para este origen")
	ErrLeadAlreadyConverted = errors.New("el lead ya fue convertido en contacto")

	ErrContactNotFound    = errors.New("contacto no encontrado")
	ErrContactEmailExists = errors.New("ya existe un contacto con este email")

	ErrDealNotFound = errors.New("negociación no encontrada")

	ErrCourseNotFound      = errors.New("curso no encontrado")
	ErrCompanyNotFound     = errors.New("empresa no encontrada")
	ErrTestimonialNotFound = errors.New("testimonio no encontrado")
	ErrTaxonomyNotFound    = errors.New("registro no encontrado")
	ErrSlugAlreadyExists   = errors.New("el slug ya está en uso")

	ErrAdminNotFound = errors.New("usuario administrador no encontrado")
)
