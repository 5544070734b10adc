package auth

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Goのregexpは先読みを持たないため、文字種の必須条件は個別にチェックする
	passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]{8,}$`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
)

const passwordSpecials = "!@#$%^&*"

// ValidateEmail はメールアドレスの形式を検証します。
// DNSや到達性の確認は行わず、純粋に構文のみを見ます。
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword はパスワードの強度を検証します。
// 8文字以上、英数字と !@#$%^&* のみで構成され、
// 数字と記号をそれぞれ1文字以上含む必要があります。
func ValidatePassword(password string) bool {
	if !passwordCharset.MatchString(password) {
		return false
	}
	if !passwordDigit.MatchString(password) {
		return false
	}
	return strings.ContainsAny(password, passwordSpecials)
}
