package usecase

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do core. Todos são tratados na borda da ação do usuário
// (handler HTTP) e viram resposta; nada aqui é fatal.

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ConflictError bloqueia operações que violariam um invariante estrutural
// (ex: remover o último estágio de um funil).
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

// StorageError embrulha falha de persistência. A mutação otimista já foi
// desfeita quando ele chega ao chamador.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
