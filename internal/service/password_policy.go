package service

import (
	"github.com/ventas-next/internal/config"
)

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordPolicyError) Key() string {
	return e.key
}

func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 6
	}
	maxLength := policy.MaxLength
	if maxLength <= 0 {
		maxLength = 20
	}

	length := len([]rune(password))
	if length < minLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{minLength}}
	}
	if length > maxLength {
		return passwordPolicyError{key: "error.password_max_length", args: []interface{}{maxLength}}
	}
	return nil
}
