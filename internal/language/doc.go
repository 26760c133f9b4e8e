// Package language normalizes language hints (ISO 639-1/639-2 codes and
// plain names) to the two-letter form WhisperX expects.
package language
