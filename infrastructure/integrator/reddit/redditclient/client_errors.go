package redditclient

import (
	"errors"
	"fmt"
)

// Tipos de erros personalizados da integração com o Reddit Ads
var (
	// Erros de autenticação
	ErrTokenExchange    = errors.New("falha na troca de token")
	ErrTokenAPIResponse = errors.New("endpoint de token retornou erro")

	// Erros de protocolo
	ErrMissingDataField = errors.New("resposta da API sem o campo data")
)

// AuthError é um erro de troca de token com o status e corpo retornados
// pela plataforma
type AuthError struct {
	Err        error  // Erro base
	StatusCode int    // Status HTTP da resposta (0 quando o corpo era 2xx)
	Details    string // Corpo da resposta ou campo error do JSON
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Err.Error(), e.StatusCode, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError cria um novo AuthError
func NewAuthError(baseErr error, statusCode int, details string) *AuthError {
	return &AuthError{
		Err:        baseErr,
		StatusCode: statusCode,
		Details:    details,
	}
}

// ProtocolError é um erro de formato inesperado na resposta da API de dados
type ProtocolError struct {
	Err      error  // Erro base
	Resource string // Recurso consultado (reports, ads, ad_groups, campaigns)
}

// Error implementa a interface error
func (e *ProtocolError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: recurso %s", e.Err.Error(), e.Resource)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// NewProtocolError cria um novo ProtocolError
func NewProtocolError(baseErr error, resource string) *ProtocolError {
	return &ProtocolError{
		Err:      baseErr,
		Resource: resource,
	}
}
