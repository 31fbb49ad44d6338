package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재

	// ==================== 인증서 (CERTIFICATE_) ====================
	CertificateNotFound = "CERTIFICATE_NOT_FOUND" // 인증서 없음
	CertificateIDExists = "CERTIFICATE_ID_EXISTS" // 인증서 ID 중복
	CertificateInvalid  = "CERTIFICATE_INVALID"   // 필드 검증 실패
	ShareTokenInvalid   = "SHARE_TOKEN_INVALID"   // 공유 링크 만료/위조

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // 잘못된 파일 형식
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // 파일 너무 큼
	UploadInProgress      = "UPLOAD_IN_PROGRESS"       // 처리 중
	UploadFailed          = "UPLOAD_FAILED"            // 업로드 실패

	// ==================== 화면 (TAB_) ====================
	TabNotFound = "TAB_NOT_FOUND" // 없는 탭

	// ==================== 알림 (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND" // 알림 없음

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"  // S3 오류
)
