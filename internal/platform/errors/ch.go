package errors

// ClickHouse server exception classification

import (
	stderrs "errors"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouse server exception codes we classify
const (
	chErrUnknownTable       = 60
	chErrUnknownDatabase    = 81
	chErrUnknownIdentifier  = 47
	chErrTimeoutExceeded    = 159
	chErrTooManySimQueries  = 202
	chErrNetworkError       = 210
	chErrTableIsReadOnly    = 242
	chErrAllReplicasAreLost = 279
)

// ExtractClickhouseException returns the server exception behind err, if any
func ExtractClickhouseException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// FromClickhouse wraps err with a code derived from the server exception; nil stays nil
func FromClickhouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	ex, ok := ExtractClickhouseException(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	switch ex.Code {
	case chErrUnknownTable, chErrUnknownDatabase, chErrUnknownIdentifier:
		return Wrap(err, ErrorCodeDataUnavailable, msg)
	case chErrTimeoutExceeded, chErrTooManySimQueries, chErrNetworkError, chErrAllReplicasAreLost, chErrTableIsReadOnly:
		return Wrap(err, ErrorCodeUnavailable, msg)
	default:
		return Wrap(err, ErrorCodeDB, msg)
	}
}

// IsClickhouseRetryable reports transient ClickHouse server conditions
func IsClickhouseRetryable(err error) bool {
	ex, ok := ExtractClickhouseException(err)
	if !ok {
		return false
	}
	switch ex.Code {
	case chErrTimeoutExceeded, chErrTooManySimQueries, chErrNetworkError, chErrAllReplicasAreLost:
		return true
	}
	return false
}
