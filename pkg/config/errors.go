package config

import "errors"

var (
	// ErrNilPointer indicates a nil configuration pointer was passed
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrParsingConfig indicates the configuration could not be parsed
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrReadingFile indicates the configuration file could not be read
	ErrReadingFile = errors.New("config.reading_file_failed")
)
