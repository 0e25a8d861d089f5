package pgerr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// Code возвращает SQLSTATE ошибки postgres или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Constraint имя нарушенного ограничения
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsSerializationFailure конфликт сериализуемой транзакции или deadlock, операцию можно повторить
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == pgerrcode.SerializationFailure || code == pgerrcode.DeadlockDetected
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == pgerrcode.UniqueViolation
}

// IsExclusionViolation нарушение exclusion constraint (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == pgerrcode.ExclusionViolation
}
