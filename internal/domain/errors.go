package domain

import "errors"

var (
	// ErrDataLoad indicates the checklist source is missing or malformed.
	// Nothing can proceed without a catalog.
	ErrDataLoad = errors.New("checklist data load failed")

	// ErrScoring indicates invalid or incomplete answers. The caller can
	// re-prompt the user.
	ErrScoring = errors.New("invalid assessment answers")

	// ErrLogWrite indicates the assessment could not be appended to the log.
	// The computed score remains valid.
	ErrLogWrite = errors.New("assessment log write failed")

	// ErrInvalidRespondent indicates missing or malformed respondent details.
	ErrInvalidRespondent = errors.New("invalid respondent")

	// ErrLogRead indicates the assessment log could not be read back.
	ErrLogRead = errors.New("assessment log read failed")
)
