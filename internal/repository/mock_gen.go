// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./submission.go -destination=../mocks/mock_submission_repository.go -package=mocks SubmissionRepositoryIface
//go:generate mockgen -source=./pillar.go -destination=../mocks/mock_pillar_repository.go -package=mocks PillarRepositoryIface
//go:generate mockgen -source=./audit_log.go -destination=../mocks/mock_audit_log_repository.go -package=mocks AuditLogRepositoryIface
