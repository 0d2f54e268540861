// Package response padroniza as respostas JSON dos handlers HTTP.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mercadinho/internal/domain"
	apperror "mercadinho/internal/errors"
	"mercadinho/internal/pkg/logger"
)

// Write envia data com successStatus, ou traduz err para o status e o corpo de erro padronizados.
func Write(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		status, category, message := apperror.MapToHTTPStatus(err)
		logError(log, r, status, category, err)
		writeJSON(w, log, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
		return
	}

	log.Debug("Requisição concluída com sucesso", map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": successStatus,
	})
	if data == nil {
		w.WriteHeader(successStatus)
		return
	}
	writeJSON(w, log, successStatus, data)
}

// WriteError envia um corpo de erro arbitrário (body) com o status mapeado de err.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error, body func(domain.ErrorResponse) interface{}) {
	status, category, message := apperror.MapToHTTPStatus(err)
	logError(log, r, status, category, err)
	writeJSON(w, log, status, body(domain.ErrorResponse{Code: status, Category: category, Message: message}))
}

// Decode lê o corpo JSON da requisição em dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

func logError(log logger.Logger, r *http.Request, status int, category string, err error) {
	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		return
	}
	log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
}

func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}
