package services

import "errors"

var (
	// ErrHerbNotFound wird zurückgegeben, wenn kein Pflanzenname passt.
	ErrHerbNotFound = errors.New("herb not found")

	// ErrCompoundNotFound wird zurückgegeben, wenn kein Wirkstoffname passt.
	ErrCompoundNotFound = errors.New("compound not found")
)

// ExternalServiceError kapselt einen Fehler des Reranking-Dienstes.
// Es gibt keinen Fallback auf ungerankte Ergebnisse.
type ExternalServiceError struct {
	Provider string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return e.Provider + " rerank failed: " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
