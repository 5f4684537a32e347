package validate

// UIDPattern parameterizes the expected badge-identifier shape: lowercase
// hex-like characters, containing at least one letter and one digit, with a
// bounded length.
type UIDPattern struct {
	MinLen int
	MaxLen int
}

// DefaultUIDPattern matches the deployed badge format: 8 or 9 characters.
func DefaultUIDPattern() UIDPattern {
	return UIDPattern{MinLen: 8, MaxLen: 9}
}

// Match reports whether uid has the expected badge shape. An explicit
// character-class scan: the "at least one letter and one digit" requirement
// would need regex lookahead, which RE2 does not support.
func (p UIDPattern) Match(uid string) bool {
	if len(uid) < p.MinLen || len(uid) > p.MaxLen {
		return false
	}
	hasLetter, hasDigit := false, false
	for i := 0; i < len(uid); i++ {
		switch c := uid[i]; {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'a' && c <= 'f':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
