package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/pkg/util"
	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 사용자 친화적인 메시지와 코드로 변환
// 내부 에러 문자열은 숨기되, 검증 에러는 원인을 그대로 전달
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: getDefaultErrorMessage(context),
		}
	}

	// 1. 서비스 레이어 sentinel 에러
	switch {
	case errors.Is(err, service.ErrCertificateNotFound):
		return ErrorInfo{http.StatusNotFound, CertificateNotFound, service.MessageCertificateNotFound}
	case errors.Is(err, service.ErrDuplicateCertificateID):
		return ErrorInfo{http.StatusConflict, CertificateIDExists, "A certificate with this ID already exists"}
	case errors.Is(err, service.ErrInvalidCertificate):
		return ErrorInfo{http.StatusBadRequest, CertificateInvalid, validationDetail(err)}
	case errors.Is(err, service.ErrUploadInProgress):
		return ErrorInfo{http.StatusConflict, UploadInProgress, service.MessageUploadBusy}
	case errors.Is(err, service.ErrInvalidFileType):
		return ErrorInfo{http.StatusUnsupportedMediaType, UploadInvalidFileType, service.MessageInvalidType}
	case errors.Is(err, service.ErrFileTooLarge):
		return ErrorInfo{http.StatusRequestEntityTooLarge, UploadFileTooLarge, service.MessageFileTooLarge}
	case errors.Is(err, service.ErrTabNotFound):
		return ErrorInfo{http.StatusNotFound, TabNotFound, "Unknown tab"}
	case errors.Is(err, service.ErrInvalidShareToken),
		errors.Is(err, util.ErrInvalidToken),
		errors.Is(err, util.ErrExpiredToken):
		return ErrorInfo{http.StatusUnauthorized, ShareTokenInvalid, "This verification link is invalid or has expired"}
	}

	// 2. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{http.StatusNotFound, ResourceNotFound, getNotFoundMessage(context)}
	}

	errStrLower := strings.ToLower(err.Error())

	// 3. DB 제약조건 에러 (PostgreSQL 23505 / SQLite UNIQUE)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}
	if strings.Contains(errStrLower, "violates not-null constraint") || strings.Contains(errStrLower, "not null constraint failed") {
		return ErrorInfo{http.StatusBadRequest, ValidationRequired, "A required field is missing"}
	}

	// 4. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalStorageError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	// 5. 기본 내부 서버 오류
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// validationDetail strips the sentinel prefix so only the field rule remains.
func validationDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, service.ErrInvalidCertificate.Error()+": "); i >= 0 {
		return msg[i+len(service.ErrInvalidCertificate.Error())+2:]
	}
	return "Invalid certificate"
}

// parseDuplicateKeyError Unique constraint 위반 에러 파싱
func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "certificate_id") {
		return ErrorInfo{http.StatusConflict, CertificateIDExists, "A certificate with this ID already exists"}
	}
	return ErrorInfo{http.StatusConflict, ResourceAlreadyExists, "This record already exists"}
}

// getNotFoundMessage context에 따른 Not Found 메시지
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "certificate") {
		return service.MessageCertificateNotFound
	}
	if strings.Contains(contextLower, "notification") || strings.Contains(contextLower, "toast") {
		return "Notification not found"
	}
	return "The requested resource was not found"
}

// getDefaultErrorMessage context에 따른 기본 에러 메시지
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to add the certificate. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the certificate. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the certificate. Please try again later"
	case strings.Contains(contextLower, "export"), strings.Contains(contextLower, "backup"):
		return "Failed to export the database. Please try again later"
	case strings.Contains(contextLower, "upload"):
		return "Failed to process the upload. Please try again later"
	}
	return "Something went wrong. Please try again later"
}

// ParseAndRespond 에러를 파싱하여 응답 반환 (헬퍼 함수)
// controller에서 간편하게 사용할 수 있도록
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(errorInfo.Status, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
