package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do Mercadinho.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "OUT_OF_STOCK")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Erros genéricos ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um operador autenticado sem a permissão necessária.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro de autorização.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., OCC, recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito (usado em OCC).
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// RateLimitError indica que o cliente excedeu a taxa de requisições permitida.
type RateLimitError struct{}

func (e *RateLimitError) Error() string    { return "Limite de requisições excedido. Tente novamente em instantes." }
func (e *RateLimitError) Category() string { return "RATE_LIMITED" }
func (e *RateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests }
func (e *RateLimitError) Unwrap() error    { return nil }

// NewRateLimitError cria um erro de limite de requisições.
func NewRateLimitError() AppError {
	return &RateLimitError{}
}

// --- Erros do carrinho e do checkout ---

// ProductNotFoundError indica que o código de barras lido não existe no catálogo.
type ProductNotFoundError struct {
	Barcode string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Produto não encontrado para o código %s", e.Barcode)
}
func (e *ProductNotFoundError) Category() string { return "PRODUCT_NOT_FOUND" }
func (e *ProductNotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *ProductNotFoundError) Unwrap() error    { return nil }

// NewProductNotFoundError cria um erro de produto inexistente para o código informado.
func NewProductNotFoundError(barcode string) AppError {
	return &ProductNotFoundError{Barcode: barcode}
}

// OutOfStockError indica que não há exposição ativa com saldo para o produto no local.
type OutOfStockError struct {
	ProductID string
	Name      string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("Produto sem estoque: %s", e.Name)
}
func (e *OutOfStockError) Category() string { return "OUT_OF_STOCK" }
func (e *OutOfStockError) HTTPStatus() int  { return http.StatusConflict }
func (e *OutOfStockError) Unwrap() error    { return nil }

// NewOutOfStockError cria um erro de produto sem estoque.
func NewOutOfStockError(productID, name string) AppError {
	return &OutOfStockError{ProductID: productID, Name: name}
}

// MaxQuantityReachedError indica que o carrinho já reserva todo o saldo conhecido do produto.
type MaxQuantityReachedError struct {
	ProductID string
	Name      string
	Available int
}

func (e *MaxQuantityReachedError) Error() string {
	return fmt.Sprintf("Quantidade máxima atingida para %s (disponível: %d)", e.Name, e.Available)
}
func (e *MaxQuantityReachedError) Category() string { return "MAX_QUANTITY_REACHED" }
func (e *MaxQuantityReachedError) HTTPStatus() int  { return http.StatusConflict }
func (e *MaxQuantityReachedError) Unwrap() error    { return nil }

// NewMaxQuantityReachedError cria um erro de quantidade máxima.
func NewMaxQuantityReachedError(productID, name string, available int) AppError {
	return &MaxQuantityReachedError{ProductID: productID, Name: name, Available: available}
}

// StockChangedError indica, no checkout, que uma exposição tem menos saldo do que o carrinho reserva.
type StockChangedError struct {
	ProductID string
	Name      string
	LotID     string
	Reserved  int
	Current   int
}

func (e *StockChangedError) Error() string {
	return fmt.Sprintf("O estoque de %s mudou: reservado %d, disponível %d", e.Name, e.Reserved, e.Current)
}
func (e *StockChangedError) Category() string { return "STOCK_CHANGED" }
func (e *StockChangedError) HTTPStatus() int  { return http.StatusConflict }
func (e *StockChangedError) Unwrap() error    { return nil }

// NewStockChangedError cria um erro de estoque alterado entre a leitura e o checkout.
func NewStockChangedError(productID, name, lotID string, reserved, current int) AppError {
	return &StockChangedError{ProductID: productID, Name: name, LotID: lotID, Reserved: reserved, Current: current}
}

// SettlementFailedError indica que a compra não pôde ser gravada. Nada foi persistido; é seguro repetir.
type SettlementFailedError struct {
	Msg string
	Err error
}

func (e *SettlementFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Falha ao finalizar compra: %s: %s", e.Msg, e.Err.Error())
	}
	return fmt.Sprintf("Falha ao finalizar compra: %s", e.Msg)
}
func (e *SettlementFailedError) Category() string { return "SETTLEMENT_FAILED" }
func (e *SettlementFailedError) HTTPStatus() int  { return http.StatusServiceUnavailable }
func (e *SettlementFailedError) Unwrap() error    { return e.Err }

// NewSettlementFailedError cria um erro de falha na gravação da compra.
func NewSettlementFailedError(msg string, err error) AppError {
	return &SettlementFailedError{Msg: msg, Err: err}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
