package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Tipos de erros personalizados da carga no warehouse
var (
	ErrStagingLoad          = errors.New("erro ao carregar a tabela de staging")
	ErrMergeFailed          = errors.New("erro ao executar o merge no destino")
	ErrEnsureTable          = errors.New("erro ao garantir a tabela de destino")
	ErrUnsupportedFieldType = errors.New("tipo de campo não suportado no schema")
	ErrMissingRequiredValue = errors.New("valor obrigatório ausente na linha")
	ErrValueTypeMismatch    = errors.New("valor com tipo incompatível com o schema")
)

// LoadError é um erro de carga com o diagnóstico estruturado do backend,
// quando disponível
type LoadError struct {
	Err         error     // Erro base
	Cause       error     // Erro retornado pelo backend ou detalhe da linha
	Diagnostics *pq.Error // Diagnóstico estruturado do PostgreSQL
}

// Error implementa a interface error
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Cause.Error())
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError cria um novo LoadError, extraindo o diagnóstico do driver
// quando a causa vem do PostgreSQL
func NewLoadError(baseErr, cause error) *LoadError {
	loadErr := &LoadError{
		Err:   baseErr,
		Cause: cause,
	}

	var pqErr *pq.Error
	if errors.As(cause, &pqErr) {
		loadErr.Diagnostics = pqErr
	}

	return loadErr
}
