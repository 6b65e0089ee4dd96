package usecase

import (
	"errors"
	"fmt"

	repo "github.com/shibez0112/Ecommerce/internal/repository"
)

// エラーの種類。handlerでHTTPステータスに変換する
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindStorage      ErrorKind = "STORAGE_ERROR"
)

// usecaseが返すエラー。Errは原因（ログ用）
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(kind ErrorKind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

func IsKind(err error, kind ErrorKind) bool {
	ae, ok := AsAppError(err)
	return ok && ae.Kind == kind
}

func validationError(message string) error {
	return NewAppError(KindValidation, message)
}

func unauthorized() error {
	return NewAppError(KindUnauthorized, "unauthorized")
}

func storageError(err error) error {
	return &AppError{Kind: KindStorage, Message: "db error", Err: err}
}

// ErrNotFoundならNotFound、それ以外はStorageError
func notFoundOr(err error, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewAppError(KindNotFound, message)
	}
	return storageError(err)
}

// ErrDuplicateならConflict、それ以外はStorageError
func conflictOr(err error, message string) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return NewAppError(KindConflict, message)
	}
	return storageError(err)
}

// Tx内で返したAppErrorはそのまま、それ以外はStorageError
func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	return storageError(err)
}
