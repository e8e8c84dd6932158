package skin

// ConfigParseError is returned for any malformed skin description. Err holds
// the underlying cause when there is one, e.g. an image that failed to decode.
type ConfigParseError struct {
	Msg string
	Err error
}

func (e *ConfigParseError) Error() string {
	if e.Err != nil {
		return e.Msg + " (" + e.Err.Error() + ")"
	}
	return e.Msg
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

func parseError(msg string) error {
	return &ConfigParseError{Msg: msg}
}
