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

package helper

import (
	"errors"
	"fmt"
	"os"

	"github.com/codenotary/sap/pkg/client"
)

var osexit = os.Exit

// QuitToStdErr prints an error on stderr and closes
func QuitToStdErr(msg interface{}) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	osexit(1)
}

// QuitWithUserError ...
func QuitWithUserError(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		QuitToStdErr(errors.New("unauthorized, pass the provider refresh token with --token"))
	}
	QuitToStdErr(err)
}

func OverrideQuitter(quitter func(int)) {
	osexit = quitter
}

// UnwrapMessage strips the status decoration off provider error replies.
func UnwrapMessage(msg interface{}) interface{} {
	if err, ok := msg.(error); ok {
		var serverErr *client.ServerError
		if errors.As(err, &serverErr) {
			return serverErr.Message
		}
	}
	return msg
}
