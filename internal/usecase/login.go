package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

var errInvalidCredentials = &DomainError{
	Kind:    KindUnauthorized,
	Code:    CodeInvalidCredentials,
	Message: "email o contraseña incorrectos",
}

type LoginUseCase struct {
	Admins    entity.AdminRepositoryInterface
	Passwords PasswordChecker
	Tokens    TokenIssuer
}

func NewLoginUseCase(admins entity.AdminRepositoryInterface, passwords PasswordChecker, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{Admins: admins, Passwords: passwords, Tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, errInvalidCredentials
	}

	email := entity.NormalizeEmail(input.Email)
	user, err := uc.Admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			log.Printf("auth: login falhou para %s (usuário inexistente)", email)
			return nil, errInvalidCredentials
		}
		return nil, Classify(err)
	}

	if err := uc.Passwords.Compare(user.PasswordHash, input.Password); err != nil {
		log.Printf("auth: login falhou para %s (senha incorreta)", email)
		return nil, errInvalidCredentials
	}

	token, err := uc.Tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, &TechnicalError{Code: "TOKEN_ERROR", Message: "failed to sign session: " + err.Error(), Err: err}
	}

	return &LoginOutput{Token: token, User: user}, nil
}
