package usecase

import crerr "github.com/cockroachdb/errors"

// Error classes. Causes are attached with crerr.Mark so errors.Is matches the class while the
// original chain stays intact.
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrFetch                 = crerr.New("fetch match report")
	ErrStructural            = crerr.New("structurally invalid match report")
	ErrPersistence           = crerr.New("persist match report")
	ErrHaltingURL            = crerr.New("halting match report url")
)
