// internal/service/mock_gen.go
package service

//go:generate mockgen -source=./notifier.go -destination=../mocks/mock_notifier.go -package=mocks EnrollmentNotifier
