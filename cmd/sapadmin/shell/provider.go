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

package shell

import (
	"fmt"
	"strings"
	"time"
)

func (sh *shell) hello(args []string) (string, error) {
	info, err := sh.sapClient.Hello(sh.context)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s (%s mode)\n%s", info.Name, info.Version, info.Mode, info.Description), nil
}

func (sh *shell) health(args []string) (string, error) {
	health, err := sh.sapClient.Health(sh.context)
	if err != nil {
		return "", err
	}
	if health.Status != "ok" {
		return "", fmt.Errorf("provider reported status %q", health.Status)
	}
	return fmt.Sprintf("health check OK (%d objects cached)", health.Count), nil
}

func (sh *shell) status(args []string) (string, error) {
	status, err := sh.sapClient.Status(sh.context)
	if err != nil {
		return "", err
	}
	str := strings.Builder{}
	str.WriteString(fmt.Sprintf("objects:\t%d\n", status.Count))
	interval := time.Duration(status.IntervalSeconds * float64(time.Second))
	str.WriteString(fmt.Sprintf("refreshes:\t%d (every %s)\n", status.RefreshCount, interval))
	if status.InFlight {
		str.WriteString("refresh:\tin flight\n")
	}
	if status.LastCompletedAt != nil {
		completedAt := time.Unix(int64(*status.LastCompletedAt), 0)
		str.WriteString(fmt.Sprintf("last refresh:\t%s\n", completedAt.Format(time.RFC822)))
	}
	if status.LastError != nil {
		str.WriteString(fmt.Sprintf("last error:\t%s\n", *status.LastError))
	}
	return strings.TrimRight(str.String(), "\n"), nil
}
