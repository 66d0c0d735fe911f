package util

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"tag+filter@mail.co",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("%q should be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"user@",
		"user@domain",
		"user @example.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("%q should be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ValidatePassword("12345") {
		t.Error("5 characters should be rejected")
	}
	if !ValidatePassword("123456") {
		t.Error("6 characters should be accepted")
	}
	if !ValidatePassword("correct horse battery staple") {
		t.Error("long passphrase should be accepted")
	}
}
