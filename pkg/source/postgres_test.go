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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codenotary/sap/pkg/api"
)

func TestPostgresRowMapping(t *testing.T) {
	p := NewPostgres("postgres://localhost/demo?sslmode=disable", "SELECT * FROM employees").
		WithSourceName("hr_system").
		WithTypes("person", "employee")

	hired := time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC)

	obj, err := p.rowToObject(
		[]string{"id", "name", "salary", "hired_at", "types", "source"},
		[]interface{}{int64(42), []byte("Alice Johnson"), int64(85000), hired, []byte("{person,developer}"), "directory"},
	)
	require.NoError(t, err)
	require.Equal(t, "42", obj.ID)
	require.Equal(t, "directory", obj.Source)
	require.Equal(t, []string{"person", "developer"}, obj.Types)

	name, ok := obj.Property("name")
	require.True(t, ok)
	require.Equal(t, "Alice Johnson", name)

	salary, ok := obj.Property("salary")
	require.True(t, ok)
	require.Equal(t, int64(85000), salary)

	hiredAt, ok := obj.Property("hired_at")
	require.True(t, ok)
	require.Equal(t, api.NewTimestamp(hired), hiredAt)
}

func TestPostgresRowMappingDefaults(t *testing.T) {
	p := NewPostgres("postgres://localhost/demo", "SELECT id, name FROM employees").
		WithSourceName("hr_system").
		WithTypes("person")

	obj, err := p.rowToObject([]string{"id", "name"}, []interface{}{"emp_001", "Alice"})
	require.NoError(t, err)
	require.Equal(t, "emp_001", obj.ID)
	require.Equal(t, "hr_system", obj.Source)
	require.Equal(t, []string{"person"}, obj.Types)
}

func TestPostgresRowMappingErrors(t *testing.T) {
	p := NewPostgres("postgres://localhost/demo", "SELECT 1")

	t.Run("missing id column", func(t *testing.T) {
		_, err := p.rowToObject([]string{"name"}, []interface{}{"Alice"})
		require.ErrorIs(t, err, api.ErrInvalidObject)
		require.Contains(t, err.Error(), "must return an id column")
	})

	t.Run("null id", func(t *testing.T) {
		_, err := p.rowToObject([]string{"id"}, []interface{}{nil})
		require.ErrorIs(t, err, api.ErrInvalidObject)
	})

	t.Run("float id", func(t *testing.T) {
		_, err := p.rowToObject([]string{"id"}, []interface{}{float64(1.5)})
		require.ErrorIs(t, err, api.ErrInvalidObject)
	})

	t.Run("numeric types column", func(t *testing.T) {
		_, err := p.rowToObject([]string{"id", "types"}, []interface{}{"a", int64(7)})
		require.ErrorIs(t, err, api.ErrInvalidObject)
		require.Contains(t, err.Error(), "types must be text")
	})
}

func TestParseTypesColumn(t *testing.T) {
	types, err := parseTypesColumn("person, employee,,developer")
	require.NoError(t, err)
	require.Equal(t, []string{"person", "employee", "developer"}, types)

	types, err = parseTypesColumn(`{person,"with space"}`)
	require.NoError(t, err)
	require.Equal(t, []string{"person", "with space"}, types)

	types, err = parseTypesColumn(nil)
	require.NoError(t, err)
	require.Nil(t, types)

	types, err = parseTypesColumn("   ")
	require.NoError(t, err)
	require.Nil(t, types)
}

func TestPostgresCloseWithoutFetch(t *testing.T) {
	p := NewPostgres("postgres://localhost/demo", "SELECT 1")
	require.NoError(t, p.Close())
	require.Equal(t, "postgres", p.String())
}
