package config

import (
	"errors"
	"fmt"
)

// Tipos de erros de configuração personalizados
var (
	ErrSecretNotFound         = errors.New("segredo não encontrado no backend")
	ErrMalformedCredential    = errors.New("blob de credenciais com JSON inválido")
	ErrMissingCredentialField = errors.New("campo obrigatório ausente nas credenciais")
)

// ConfigError é um erro com contexto adicional para configuração e credenciais
type ConfigError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais (nome do segredo, campo ausente)
}

// Error implementa a interface error
func (e *ConfigError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError cria um novo ConfigError
func NewConfigError(baseErr error, details string) *ConfigError {
	return &ConfigError{
		Err:     baseErr,
		Details: details,
	}
}
