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

package source

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/api"
)

func TestDemoSourceCanonicalEmployees(t *testing.T) {
	src := NewDemo(0)
	require.Equal(t, "demo(3 employees)", src.String())

	objects, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, DemoEmployees)

	alice := objects[0]
	require.Equal(t, "emp_001", alice.ID)
	require.Equal(t, []string{"person", "employee", "developer"}, alice.Types)
	require.Equal(t, DemoSourceName, alice.Source)

	name, _ := alice.Property("name")
	require.Equal(t, "Alice Johnson", name)
	salary, _ := alice.Property("salary")
	require.Equal(t, 85000, salary)
	hiredAt, _ := alice.Property("hired_at")
	require.Equal(t, api.TimestampFromNanos(1647302400000000000), hiredAt)
	manager, _ := alice.Property("manager")
	require.Equal(t, api.NewLink(".filter(.equals(.get_field('name'), 'Bob Smith'))", "Bob Smith"), manager)
	skills, _ := alice.Property("skills")
	require.Equal(t, []string{"Python", "JavaScript", "React"}, skills)

	bob := objects[1]
	require.Equal(t, "emp_002", bob.ID)
	require.Equal(t, []string{"person", "employee", "manager"}, bob.Types)
	teamSize, _ := bob.Property("team_size")
	require.Equal(t, 8, teamSize)
	reportsTo, _ := bob.Property("reports_to")
	require.Equal(t, api.NewLink(".filter(.equals(.get_field('name'), 'Carol Davis'))", "Carol Davis"), reportsTo)

	carol := objects[2]
	require.Equal(t, "emp_003", carol.ID)
	require.Equal(t, []string{"person", "employee", "designer"}, carol.Types)
	portfolio, _ := carol.Property("portfolio_url")
	require.Equal(t, "https://caroldavis.design", portfolio)
}

func TestDemoSourceSyntheticEmployees(t *testing.T) {
	src := NewDemo(25)
	require.Equal(t, "demo(25 employees)", src.String())

	objects, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 25)

	normalized, err := api.Normalize(objects)
	require.NoError(t, err)
	require.Len(t, api.Deduplicate(normalized), 25)

	for i, obj := range objects[DemoEmployees:] {
		require.Equal(t, fmt.Sprintf("emp_%03d", DemoEmployees+i+1), obj.ID)
		require.Equal(t, []string{"person", "employee"}, obj.Types)
		require.Equal(t, DemoSourceName, obj.Source)

		name, ok := obj.Property("name")
		require.True(t, ok)
		require.NotEmpty(t, name)

		salary, ok := obj.Property("salary")
		require.True(t, ok)
		require.GreaterOrEqual(t, salary.(int), 55000)
		require.LessOrEqual(t, salary.(int), 130000)

		hiredAt, ok := obj.Property("hired_at")
		require.True(t, ok)
		require.IsType(t, api.Timestamp{}, hiredAt)
	}
}

func TestDemoSourceEncodesCleanly(t *testing.T) {
	objects, err := NewDemo(5).Fetch(context.Background())
	require.NoError(t, err)

	normalized, err := api.Normalize(objects)
	require.NoError(t, err)

	for _, obj := range normalized {
		_, err := obj.MarshalJSON()
		require.NoError(t, err)
	}
}
