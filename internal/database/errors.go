package database

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error codes the API maps onto client errors.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	CodeInvalidTextRepresentation = pq.ErrorCode("22P02")
	CodeNumericValueOutOfRange    = pq.ErrorCode("22003")
	CodeNotNullViolation          = pq.ErrorCode("23502")
	CodeForeignKeyViolation       = pq.ErrorCode("23503")
	CodeCheckViolation            = pq.ErrorCode("23514")
)

// Foreign key constraint names created by the migrations
const (
	ConstraintCommentArticle = "comments_article_id_fkey"
	ConstraintCommentAuthor  = "comments_author_fkey"
)

// PQError extracts the driver error from err, if any
func PQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// IsConstraintError reports whether err is a store-level type or constraint
// failure caused by client input rather than by the server.
func IsConstraintError(err error) bool {
	pqErr, ok := PQError(err)
	if !ok {
		return false
	}
	switch pqErr.Code {
	case CodeInvalidTextRepresentation,
		CodeNumericValueOutOfRange,
		CodeNotNullViolation,
		CodeCheckViolation:
		return true
	}
	return false
}

// IsForeignKeyViolation reports whether err violates the named constraint.
// An empty constraint matches any foreign key violation.
func IsForeignKeyViolation(err error, constraint string) bool {
	pqErr, ok := PQError(err)
	if !ok || pqErr.Code != CodeForeignKeyViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
