package validator

import (
	"fmt"
	"regexp"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxUsernameLength = 100

	errEmailEmptyFmt        = "email cannot be empty"
	errEmailLengthFmt       = "email must be between %d and %d characters"
	errEmailInvalidFmt      = "invalid email format"
	errPasswordMinLengthFmt = "password must be at least %d characters"
	errPasswordMaxLengthFmt = "password must not exceed %d characters"
	errUsernameEmptyFmt     = "username cannot be empty"
	errUsernameMaxLengthFmt = "username must not exceed %d characters"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func Username(name string) error {
	if name == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(name) > maxUsernameLength {
		return fmt.Errorf(errUsernameMaxLengthFmt, maxUsernameLength)
	}

	return nil
}
