/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package auth guards the manual refresh endpoint with a shared token.
package auth

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Base64Prefix marks a token value as base64 encoded.
const Base64Prefix = "enc:"

// DecodeBase64Token returns the plain refresh token. A value prefixed with
// "enc:" is decoded from base64 first.
func DecodeBase64Token(tokenBase64 string) (string, error) {
	token := strings.TrimSpace(tokenBase64)
	if strings.HasPrefix(token, Base64Prefix) {
		tokenNoPrefix := strings.TrimPrefix(token, Base64Prefix)
		tokenBytes, err := base64.StdEncoding.DecodeString(tokenNoPrefix)
		if err != nil {
			return "", fmt.Errorf("error decoding token from base64 string %s: %v", token, err)
		}
		token = string(tokenBytes)
	}
	return token, nil
}

// HashAndSaltToken returns the bcrypt digest of the plain token. Only the
// digest is kept around at runtime.
func HashAndSaltToken(plainToken string) ([]byte, error) {
	hashedTokenBytes, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing token: %v", err)
	}
	return hashedTokenBytes, nil
}

// CompareTokens checks the plain token against a digest produced by
// HashAndSaltToken.
func CompareTokens(hashedToken []byte, plainToken []byte) error {
	return bcrypt.CompareHashAndPassword(hashedToken, plainToken)
}
