package service

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrNameRequired         = errors.New("name is required")
	ErrManufacturerNotFound = errors.New("manufacturer not found")
	ErrUsernameRequired     = errors.New("username is required")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrLicenseRequired      = errors.New("license number is required")
	ErrLicenseTaken         = errors.New("license number is already taken")
	ErrInvalidLicenseNumber = errors.New("license number must be 3 uppercase letters followed by 5 digits")
	ErrPasswordRequired     = errors.New("password is required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
)
