package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidate is the structured log field key for a candidate identifier.
	FieldCandidate = "candidate_id"
	// FieldSkill is the structured log field key for a skill name.
	FieldSkill = "skill"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields returns the fields describing a candidate and, optionally, a skill.
// Empty values are ignored to keep log entries compact.
func CandidateFields(candidateID, skill string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidate, Value: candidateID},
		StringField{Key: FieldSkill, Value: skill},
	)
}

// ForCandidate attaches the candidate fields to the provided logger.
func ForCandidate(logger *zap.Logger, candidateID string) *zap.Logger {
	return WithFields(logger, CandidateFields(candidateID, "")...)
}
