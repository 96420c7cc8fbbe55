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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

func (sh *shell) data(args []string) (string, error) {
	objects, err := sh.sapClient.AllData(sh.context)
	if err != nil {
		return "", err
	}
	countsByType := map[string]int{}
	for _, o := range objects {
		for _, tp := range o.Types {
			countsByType[tp]++
		}
	}
	types := make([]string, 0, len(countsByType))
	for tp := range countsByType {
		types = append(types, tp)
	}
	sort.Strings(types)
	str := strings.Builder{}
	for _, tp := range types {
		str.WriteString(fmt.Sprintf("%s\t%d\n", tp, countsByType[tp]))
	}
	str.WriteString(fmt.Sprintf("%d object(s)", len(objects)))
	return str.String(), nil
}

func (sh *shell) object(args []string) (string, error) {
	objects, err := sh.sapClient.AllData(sh.context)
	if err != nil {
		return "", err
	}
	for _, o := range objects {
		if o.ID == args[0] {
			b, err := json.MarshalIndent(o, "", "  ")
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}
	return "", fmt.Errorf("no object with id %s", args[0])
}
