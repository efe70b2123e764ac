package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

// classifyError maps driver errors the processor must react to onto repository sentinels.
func classifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pgerrcode.UniqueViolation:
		cn := strings.ToLower(pqErr.Constraint)
		if strings.Contains(cn, "request_id") || strings.Contains(strings.ToLower(pqErr.Detail), "request_id") {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateRequestID, err)
		}
	case pgerrcode.LockNotAvailable, pgerrcode.DeadlockDetected, pgerrcode.SerializationFailure:
		return fmt.Errorf("%w: %v", repository.ErrLockTimeout, err)
	}
	return err
}
